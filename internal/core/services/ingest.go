package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkharche/FinWise-AI/internal/chunker"
	"github.com/dkharche/FinWise-AI/internal/core/domain"
	"github.com/dkharche/FinWise-AI/internal/core/ports/driving"
	"github.com/dkharche/FinWise-AI/internal/logger"
)

// Ensure DocumentIngestor implements the interface.
var _ driving.DocumentService = (*DocumentIngestor)(nil)

// DocumentIngestor chunks extracted text and feeds it into the RAG
// pipeline under a generated document ID.
type DocumentIngestor struct {
	splitter *chunker.Splitter
	rag      driving.RAGService
}

// NewDocumentIngestor creates a new ingestor.
func NewDocumentIngestor(splitter *chunker.Splitter, rag driving.RAGService) *DocumentIngestor {
	return &DocumentIngestor{
		splitter: splitter,
		rag:      rag,
	}
}

// NewDocumentID generates a fresh document identifier.
// The "doc_" prefix plus twelve hex characters is kept stable because
// index entry IDs are derived from it.
func NewDocumentID() string {
	return "doc_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// Ingest chunks the text and indexes every chunk. Documents with no
// extractable text produce a document record with zero chunks and
// nothing is indexed.
func (g *DocumentIngestor) Ingest(
	ctx context.Context, filename, text string, metadata map[string]any,
) (*domain.Document, []domain.Chunk, error) {
	doc := &domain.Document{
		ID:         NewDocumentID(),
		Filename:   filename,
		Text:       text,
		Metadata:   metadata,
		WordCount:  len(strings.Fields(text)),
		UploadedAt: time.Now(),
	}

	chunks := g.splitter.Split(text)
	logger.Info("Created %d chunks from document %s", len(chunks), doc.ID)

	if len(chunks) == 0 {
		return doc, nil, nil
	}

	docMeta := make(map[string]any, len(metadata)+1)
	for k, v := range metadata {
		docMeta[k] = v
	}
	if filename != "" {
		docMeta[domain.MetaFilename] = filename
	}

	if err := g.rag.IndexDocument(ctx, doc.ID, chunks, docMeta); err != nil {
		return nil, nil, fmt.Errorf("ingest %s: %w", filename, err)
	}

	return doc, chunks, nil
}

// Remove deletes a previously ingested document from the index.
func (g *DocumentIngestor) Remove(ctx context.Context, documentID string, chunkCount int) error {
	return g.rag.RemoveDocument(ctx, documentID, chunkCount)
}
