package driving

import (
	"context"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
)

// RAGService answers natural-language questions grounded in indexed
// documents, and feeds new documents into the vector index.
type RAGService interface {
	// Initialize sets up the owned vector index. Safe to call
	// redundantly; only the first successful call does work.
	Initialize(ctx context.Context) error

	// IndexDocument embeds and stores a document's chunks.
	// All-or-nothing per document: on failure the caller must treat
	// the whole document as not indexed and may retry.
	IndexDocument(ctx context.Context, documentID string, chunks []domain.Chunk, metadata map[string]any) error

	// Query retrieves the nResults chunks most relevant to the query,
	// optionally restricted by an exact-match metadata filter, and
	// delegates answer generation to the configured language model.
	Query(ctx context.Context, query string, nResults int, filter map[string]any) (*domain.QueryAnswer, error)

	// RemoveDocument deletes a document's entries from the index.
	RemoveDocument(ctx context.Context, documentID string, chunkCount int) error

	// Stats reports the vector index state.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// Clear drops every entry from the index.
	Clear(ctx context.Context) error
}
