package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

const (
	providerNameOpenAI = "openai"
	// Reasoning is kept low for sequence-edit calls: this is a
	// single-shot JSON-in/JSON-out edit, not an open-ended composition.
	editReasoningEffort = shared.ReasoningEffort("low")
)

// OpenAIProvider implements Provider using OpenAI's Responses API.
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{client: &client}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// Generate sends the sequence-edit request to OpenAI's Responses API and
// returns its raw text output for the caller to parse.
func (p *OpenAIProvider) Generate(ctx context.Context, request *EditRequest) (*EditResponse, error) {
	startTime := time.Now()
	log.Printf("🎵 OPENAI EDIT REQUEST STARTED (Model: %s)", request.Model)

	transaction := sentry.StartTransaction(ctx, "openai.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOpenAI)
	transaction.SetTag("ranged", fmt.Sprintf("%t", request.SelectionStart != nil))

	params := responses.ResponseNewParams{
		Model: request.Model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(
					BuildUserMessage(request.CurrentSequenceJSON, request.Instruction),
					responses.EasyInputMessageRoleUser,
				),
			},
		},
		Instructions: openai.String(request.SystemPrompt),
		Reasoning: shared.ReasoningParam{
			Effort: editReasoningEffort,
		},
	}

	span := transaction.StartChild("openai.api_call")
	apiStart := time.Now()
	resp, err := p.client.Responses.New(ctx, params)
	apiDuration := time.Since(apiStart)
	span.Finish()

	if err != nil {
		log.Printf("❌ OPENAI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	log.Printf("⏱️  OPENAI API CALL COMPLETED in %v", apiDuration)

	text := resp.OutputText()
	if text == "" {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("openai response did not include any output text")
	}

	log.Printf("✅ OPENAI EDIT COMPLETED in %v (output_length=%d)", time.Since(startTime), len(text))
	transaction.SetTag("success", "true")

	return &EditResponse{RawOutput: text, Usage: resp.Usage}, nil
}
