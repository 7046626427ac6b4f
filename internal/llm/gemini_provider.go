package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const providerNameGemini = "gemini"

// GeminiProvider implements Provider using Google's Gemini API.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Generate sends the sequence-edit request to Gemini and returns its raw
// text output for the caller to parse.
func (p *GeminiProvider) Generate(ctx context.Context, request *EditRequest) (*EditResponse, error) {
	startTime := time.Now()
	log.Printf("🎵 GEMINI EDIT REQUEST STARTED (Model: %s)", request.Model)

	transaction := sentry.StartTransaction(ctx, "gemini.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameGemini)
	transaction.SetTag("ranged", fmt.Sprintf("%t", request.SelectionStart != nil))

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: BuildUserMessage(request.CurrentSequenceJSON, request.Instruction)}},
		},
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: request.SystemPrompt}},
		},
	}

	span := transaction.StartChild("gemini.api_call")
	apiStart := time.Now()
	result, err := p.client.Models.GenerateContent(ctx, request.Model, contents, config)
	apiDuration := time.Since(apiStart)
	span.Finish()

	if err != nil {
		log.Printf("❌ GEMINI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	log.Printf("⏱️  GEMINI API CALL COMPLETED in %v", apiDuration)

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("gemini response contained no output")
	}
	text := result.Candidates[0].Content.Parts[0].Text
	if text == "" {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("gemini response did not include any output text")
	}

	if result.UsageMetadata != nil {
		log.Printf("📊 GEMINI USAGE: input=%d, output=%d, total=%d",
			result.UsageMetadata.PromptTokenCount,
			result.UsageMetadata.CandidatesTokenCount,
			result.UsageMetadata.TotalTokenCount)
	}

	log.Printf("✅ GEMINI EDIT COMPLETED in %v (output_length=%d)", time.Since(startTime), len(text))
	transaction.SetTag("success", "true")

	return &EditResponse{RawOutput: text, Usage: result.UsageMetadata}, nil
}
