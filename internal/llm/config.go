// Package llm provides the text-generation client used for CV enhancement,
// with tiered model selection so callers name a capability level instead of
// a concrete model.
package llm

// ModelTier represents the capability level requested for a task.
type ModelTier string

const (
	// TierLite is for cheap tasks: classification, short extraction.
	TierLite ModelTier = "lite"
	// TierStandard is for structured output such as CV enhancement.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for heavier rewriting and reasoning.
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies the backing LLM provider.
type Provider string

// ProviderGemini is the Google Gemini provider.
const ProviderGemini Provider = "gemini"

// Config maps tiers to concrete model names for one provider.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the Gemini tier mapping used in production.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard and
// then lite when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier overridden.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	cfg := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)),
	}
	for k, v := range c.Models {
		cfg.Models[k] = v
	}
	cfg.Models[tier] = model
	return cfg
}
