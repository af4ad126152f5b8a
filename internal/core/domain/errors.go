package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID indicates an index entry with the same ID already exists.
	// The vector index is append-only per chunk: re-adding an ID is rejected
	// rather than upserted.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidChunking indicates chunk size and overlap parameters that
	// cannot make forward progress (overlap >= chunk size, or a non-positive
	// chunk size).
	ErrInvalidChunking = errors.New("invalid chunking configuration")

	// ErrInitialization indicates the vector index or embedding capability
	// could not be set up.
	ErrInitialization = errors.New("initialisation failed")

	// ErrStorage indicates an I/O failure in the storage backend.
	// The failed operation leaves no partial state behind.
	ErrStorage = errors.New("storage failure")

	// ErrEmbedding indicates the embedding provider failed to encode text.
	// A failed embedding must surface as an error, never as "no results".
	ErrEmbedding = errors.New("embedding failed")

	// ErrGeneration indicates the language model provider failed.
	ErrGeneration = errors.New("generation failed")

	// ErrLLMUnavailable indicates no LLM provider is configured.
	// Grounded question answering is disabled without one.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates no embedding provider is configured.
	// Indexing and semantic retrieval are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")
)
