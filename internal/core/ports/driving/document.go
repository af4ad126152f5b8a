package driving

import (
	"context"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
)

// DocumentService turns extracted document text into indexed chunks.
// Text extraction itself (PDF, OCR) happens upstream; this service
// receives the raw text hand-off.
type DocumentService interface {
	// Ingest chunks the text and indexes the chunks under a fresh
	// document ID. The returned document records what was indexed.
	Ingest(ctx context.Context, filename, text string, metadata map[string]any) (*domain.Document, []domain.Chunk, error)

	// Remove deletes a previously ingested document from the index.
	Remove(ctx context.Context, documentID string, chunkCount int) error
}
