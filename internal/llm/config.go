// Package llm provides the generative-text capability used to write assessment feedback.
// Providers are selected by configuration and hidden behind the Client interface.
package llm

import "time"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOllama is a self-hosted Ollama server
	ProviderOllama Provider = "ollama"
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 30 * time.Second

// Config holds the settings needed to construct a Client.
type Config struct {
	Provider    Provider
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       DefaultModel(ProviderGemini),
		Temperature: 0.4,
		Timeout:     DefaultTimeout,
	}
}

// DefaultModel returns the model used when none is configured for a provider.
func DefaultModel(p Provider) string {
	switch p {
	case ProviderOllama:
		return "llama3.1"
	default:
		return "gemini-2.5-flash"
	}
}

// ModelName returns the configured model, falling back to the provider default.
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel(c.Provider)
}

