package llm

import (
	"context"
	"fmt"
	"strings"
)

// ProviderFactory creates providers based on model name, exactly the way
// the teacher's provider_factory.go routes "gpt-*" to OpenAI — extended
// here with the "gemini-*" branch the teacher's copy never implemented,
// since this pipeline's default model lives on Gemini.
type ProviderFactory struct {
	openaiAPIKey string
	geminiAPIKey string
	defaultModel string
}

// NewProviderFactory creates a new provider factory. defaultModel is used
// when GetProvider is asked to resolve an empty model name (GEMINI_MODEL
// from the environment).
func NewProviderFactory(openaiAPIKey, geminiAPIKey, defaultModel string) *ProviderFactory {
	return &ProviderFactory{
		openaiAPIKey: openaiAPIKey,
		geminiAPIKey: geminiAPIKey,
		defaultModel: defaultModel,
	}
}

// GetProvider returns the appropriate provider for the given model.
func (f *ProviderFactory) GetProvider(ctx context.Context, model string) (Provider, error) {
	if model == "" {
		model = f.defaultModel
	}
	return f.getProviderByModel(ctx, model)
}

// getProviderByModel infers provider from model name.
func (f *ProviderFactory) getProviderByModel(ctx context.Context, model string) (Provider, error) {
	modelLower := strings.ToLower(model)

	if strings.HasPrefix(modelLower, "gpt-") {
		if f.openaiAPIKey == "" {
			return nil, fmt.Errorf("openai API key not configured")
		}
		return NewOpenAIProvider(f.openaiAPIKey), nil
	}

	if strings.HasPrefix(modelLower, "gemini-") {
		if f.geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini API key not configured")
		}
		return NewGeminiProvider(ctx, f.geminiAPIKey)
	}

	// Default to Gemini for unrecognized model names — MuseAid's
	// configured default provider.
	if f.geminiAPIKey == "" {
		return nil, fmt.Errorf("gemini API key not configured (default provider)")
	}
	return NewGeminiProvider(ctx, f.geminiAPIKey)
}
