package driven

import "context"

// LLMService provides language model generation for grounded answers.
//
// Implementations may include:
//   - OpenAI (GPT-4, GPT-4o-mini)
//   - Anthropic (Claude)
//   - Ollama (local models)
//
// The provider is selected by explicit configuration; callers depend
// only on this interface and never inspect model-name strings.
type LLMService interface {
	// Generate produces a text completion from a prompt.
	// Provider failures are propagated unchanged; no retries are
	// performed at this layer.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// SystemMessage constrains the model's behaviour for the whole call.
	SystemMessage string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
