package driven

import "context"

// LLMService provides language model operations for document
// understanding. This is an optional service - when nil, enrichment
// degrades gracefully to placeholder summaries.
//
// Implementations may include:
//   - OpenAI (GPT-4, GPT-4o-mini)
//   - Any chat-completions compatible API
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
