package driven

import "context"

// EmbeddingService turns text into vectors. It only generates;
// storage and search belong to VectorIndex, which owns an instance of
// this interface.
//
// Implementations: OpenAI (text-embedding-3-*) and Ollama
// (nomic-embed-text, all-minilm).
type EmbeddingService interface {
	// Embed generates a vector embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds several texts, batching into one API call
	// where the provider supports it.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size. Fixed by the model
	// for the lifetime of a collection.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping makes a lightweight connectivity check. Used during index
	// initialisation.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
