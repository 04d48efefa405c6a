// Package llm provides a provider-agnostic interface over interchangeable
// LLM backends. Concrete implementations exist for OpenAI-compatible cloud
// APIs (including OpenRouter) and a local Ollama daemon, plus a
// deterministic mock for testing. Implementations must be stateless and
// thread-safe.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable means the backend could not be reached or answered
	// with a server-side failure. Retryable.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrTimeout means the bounded wait elapsed before a response arrived.
	// Retryable.
	ErrTimeout = errors.New("provider timeout")

	// ErrRejected means the backend refused the request (bad credentials,
	// bad model, policy refusal). Not retryable.
	ErrRejected = errors.New("provider rejected request")

	ErrInvalidConfig = errors.New("invalid provider configuration")
)

// Provider issues a single text-completion request against one backend.
// Implementations perform exactly one logical request per call: retry
// policy belongs to the orchestrator, never here.
type Provider interface {
	// Complete sends the system and user prompts and returns the raw
	// response text. Failures are classified as ErrUnavailable,
	// ErrTimeout, or ErrRejected regardless of backend.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name returns the provider identifier (e.g., "openai", "ollama").
	Name() string
}

// Config holds common configuration options shared by provider backends.
type Config struct {
	// Model specifies the model identifier (e.g., "gpt-4o", "llama3.2").
	Model string

	// Temperature controls randomness (0 = use provider default).
	Temperature float64

	// MaxTokens limits the response length (0 = use provider default).
	MaxTokens int

	// APIKey authenticates against key-based cloud providers.
	APIKey string

	// BaseURL overrides the provider endpoint. For the cloud provider this
	// is how OpenRouter (or any OpenAI-compatible gateway) is reached; for
	// Ollama it points at the local daemon.
	BaseURL string
}

// DefaultConfig returns sensible defaults for deck generation.
func DefaultConfig() Config {
	return Config{
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   4000,
	}
}
