package llm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalyze/internal/config"
	"legalyze/internal/llm"
	"legalyze/internal/port"
)

// stubModel is a minimal LanguageModel for testing the factory.
type stubModel struct {
	model string
}

func (s *stubModel) Generate(_ context.Context, _ string) (*port.Completion, error) {
	return &port.Completion{Model: s.model}, nil
}

func registerStub(name string) {
	llm.RegisterProvider(name, func(cfg *config.ProviderConfig) (port.LanguageModel, error) {
		return &stubModel{model: cfg.DefaultModel}, nil
	})
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	registerStub("test-provider")

	m, err := llm.NewModel(&config.ProviderConfig{Provider: "test-provider", DefaultModel: "test-model"})

	require.NoError(t, err)
	out, err := m.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "test-model", out.Model)
}

func TestFactory_UnknownProvider(t *testing.T) {
	m, err := llm.NewModel(&config.ProviderConfig{Provider: "nonexistent-provider-xyz"})

	assert.Nil(t, m)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown llm provider")
}

func TestNewFromConfig_SingleProvider(t *testing.T) {
	registerStub("stub-a")

	m, err := llm.NewFromConfig(&config.LLMConfig{Provider: "stub-a", DefaultModel: "a"})

	require.NoError(t, err)
	_, isFallback := m.(*llm.FallbackModel)
	assert.False(t, isFallback)
}

func TestNewFromConfig_FailoverChain(t *testing.T) {
	registerStub("stub-a")
	registerStub("stub-b")

	m, err := llm.NewFromConfig(&config.LLMConfig{
		Primary:   config.ProviderConfig{Provider: "stub-a", DefaultModel: "a"},
		Secondary: config.ProviderConfig{Provider: "stub-b", DefaultModel: "b"},
	})

	require.NoError(t, err)
	require.IsType(t, &llm.FallbackModel{}, m)
	out, err := m.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "a", out.Model)
}

func TestNewFromConfig_UnknownProvider(t *testing.T) {
	_, err := llm.NewFromConfig(&config.LLMConfig{Provider: "missing"})

	assert.Error(t, err)
}
