package llm

import (
	"fmt"
	"strings"

	"github.com/factlens/factlens/internal/config"
)

// NewProvider creates an LLM provider based on configuration.
// An empty provider name disables LLM work and returns (nil, nil).
func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)

	case "ollama":
		return NewOllamaProvider(cfg)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}

// ConfigFrom converts the application LLM configuration
func ConfigFrom(c config.LLMConfig) Config {
	return Config{
		Provider: c.Provider,
		Model:    c.Model,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
		Timeout:  c.Timeout,
	}
}
