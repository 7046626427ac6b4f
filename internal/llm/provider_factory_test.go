package llm_test

import (
	"context"
	"testing"

	"github.com/Hon139/MuseAid/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderFactoryRoutesGPTPrefixToOpenAI(t *testing.T) {
	factory := llm.NewProviderFactory("sk-test", "", "gemini-2.0-flash")
	provider, err := factory.GetProvider(context.Background(), "gpt-5.2")
	require.NoError(t, err)
	assert.Equal(t, "openai", provider.Name())
}

func TestProviderFactoryRoutesGeminiPrefixToGemini(t *testing.T) {
	factory := llm.NewProviderFactory("", "test-key", "gemini-2.0-flash")
	provider, err := factory.GetProvider(context.Background(), "gemini-2.0-flash")
	require.NoError(t, err)
	assert.Equal(t, "gemini", provider.Name())
}

func TestProviderFactoryFallsBackToDefaultModel(t *testing.T) {
	factory := llm.NewProviderFactory("", "test-key", "gemini-2.0-flash")
	provider, err := factory.GetProvider(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "gemini", provider.Name())
}

func TestProviderFactoryMissingKeyErrors(t *testing.T) {
	factory := llm.NewProviderFactory("", "", "gemini-2.0-flash")
	_, err := factory.GetProvider(context.Background(), "gpt-5.2")
	assert.Error(t, err)

	_, err = factory.GetProvider(context.Background(), "gemini-2.0-flash")
	assert.Error(t, err)
}
