package llm

import (
	"fmt"

	"legalyze/internal/config"
	"legalyze/internal/port"
)

// ProviderFactory creates a LanguageModel from a provider config.
type ProviderFactory func(cfg *config.ProviderConfig) (port.LanguageModel, error)

// registry of provider factories, populated via RegisterProvider at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewModel creates a LanguageModel from a provider config using the registered factory.
func NewModel(cfg *config.ProviderConfig) (port.LanguageModel, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewFromConfig builds the configured providers. A single provider is returned
// as is; several are composed into a FallbackModel in config order.
func NewFromConfig(cfg *config.LLMConfig) (port.LanguageModel, error) {
	provs := cfg.Providers()
	models := make([]port.LanguageModel, 0, len(provs))
	names := make([]string, 0, len(provs))
	for _, pc := range provs {
		m, err := NewModel(pc)
		if err != nil {
			return nil, fmt.Errorf("creating %s model: %w", pc.Provider, err)
		}
		models = append(models, m)
		names = append(names, pc.Provider)
	}
	if len(models) == 1 {
		return models[0], nil
	}
	return NewFallbackModel(models, names), nil
}
