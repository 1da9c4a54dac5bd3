package llm

import "context"

// Provider defines the interface for generative-text backends. Each
// pipeline call carries its own prompt and generation parameters; providers
// hold no per-call state and are safe for concurrent use.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate produces completion text for the given request
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest contains a single completion request
type GenerateRequest struct {
	// Prompt is the full user prompt
	Prompt string

	// System is an optional system instruction
	System string

	// Temperature controls sampling randomness
	Temperature float32

	// MaxTokens caps the response length
	MaxTokens int

	// Model overrides the configured model when non-empty
	Model string
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom or compatible endpoints
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider: "",
		Model:    "",
		Timeout:  30,
	}
}
