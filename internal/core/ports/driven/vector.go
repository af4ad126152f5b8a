package driven

import (
	"context"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
)

// VectorIndex provides embedding, storage and semantic similarity search
// for chunk text. Each entry is keyed by "<documentID>_chunk_<ordinal>"
// and carries the chunk text, its vector and a metadata map.
//
// Implementations must tolerate concurrent use from multiple in-flight
// requests: Initialize has single-flight semantics, and Add batches are
// serialised against each other so writes to the same IDs never interleave.
type VectorIndex interface {
	// Initialize acquires the storage handle and the embedding capability.
	// It is idempotent: calling it again after success is a no-op.
	// Failures wrap domain.ErrInitialization.
	Initialize(ctx context.Context) error

	// Add embeds each text (batched) and persists vector, text and
	// metadata keyed by the matching ID. All three slices must have
	// equal length, and every ID must be new: re-adding an existing ID
	// is rejected with domain.ErrDuplicateID. The batch is atomic -
	// either every entry lands or none do.
	Add(ctx context.Context, texts []string, metadatas []map[string]any, ids []string) error

	// Search embeds the query and returns up to n entries nearest to it,
	// ordered by increasing distance. A non-nil filter restricts results
	// to entries whose metadata exactly matches every filter field.
	// An empty index or a filter matching nothing yields an empty slice,
	// not an error.
	Search(ctx context.Context, query string, n int, filter map[string]any) ([]domain.SearchResult, error)

	// Delete removes the entries with the given IDs.
	// Unknown IDs are ignored.
	Delete(ctx context.Context, ids []string) error

	// Stats reports the entry count and embedding dimension.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// Clear drops and recreates the collection. Destructive; callers
	// must gate it behind their own confirmation.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
