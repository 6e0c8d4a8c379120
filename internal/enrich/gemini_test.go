package enrich

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	_, err := NewGenerator(context.Background(), "  ", "gemini-2.5-flash", "")
	assert.ErrorContains(t, err, "api key")
}

func TestNewGeneratorDefaults(t *testing.T) {
	gen, err := NewGenerator(context.Background(), "test-key", "", "")
	require.NoError(t, err)

	assert.Equal(t, defaultModel, gen.Model())
	assert.Empty(t, gen.BaseURL())
}

func TestNewGeneratorConfigurableEndpoint(t *testing.T) {
	gen, err := NewGenerator(context.Background(), "test-key", "gemini-2.0-pro", "https://llm-proxy.internal.example.com")
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-pro", gen.Model())
	assert.Equal(t, "https://llm-proxy.internal.example.com", gen.BaseURL())
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	gen, err := NewGenerator(context.Background(), "test-key", "", "")
	require.NoError(t, err)

	_, err = gen.GenerateContent(context.Background(), "   ")
	assert.ErrorContains(t, err, "prompt")
}
