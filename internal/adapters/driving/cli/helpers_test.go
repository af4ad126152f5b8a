package cli

import (
	"context"
	"time"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
	"github.com/dkharche/FinWise-AI/internal/core/services"
)

// stubRAGService returns canned answers for command tests.
type stubRAGService struct {
	answer    *domain.QueryAnswer
	stats     domain.IndexStats
	queryErr  error
	cleared   bool
	lastQuery string
}

func (s *stubRAGService) Initialize(context.Context) error { return nil }

func (s *stubRAGService) IndexDocument(context.Context, string, []domain.Chunk, map[string]any) error {
	return nil
}

func (s *stubRAGService) Query(_ context.Context, query string, _ int, _ map[string]any) (*domain.QueryAnswer, error) {
	s.lastQuery = query
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	if s.answer != nil {
		return s.answer, nil
	}
	return &domain.QueryAnswer{
		Answer:         "Your largest expense was rent.",
		Sources:        []domain.SearchResult{{ID: "doc_abc_chunk_0", Metadata: map[string]any{domain.MetaFilename: "statement.txt"}}},
		ProcessingTime: 10 * time.Millisecond,
		ModelUsed:      "stub-model",
		NumSources:     1,
	}, nil
}

func (s *stubRAGService) RemoveDocument(context.Context, string, int) error { return nil }

func (s *stubRAGService) Stats(context.Context) (domain.IndexStats, error) { return s.stats, nil }

func (s *stubRAGService) Clear(context.Context) error {
	s.cleared = true
	return nil
}

// stubDocumentService records ingests for command tests.
type stubDocumentService struct {
	removedID     string
	removedChunks int
}

func (s *stubDocumentService) Ingest(_ context.Context, filename, text string, _ map[string]any) (*domain.Document, []domain.Chunk, error) {
	return &domain.Document{
		ID:        "doc_1234567890ab",
		Filename:  filename,
		Text:      text,
		WordCount: 3,
	}, []domain.Chunk{{Ordinal: 0, Text: text}}, nil
}

func (s *stubDocumentService) Remove(_ context.Context, documentID string, chunkCount int) error {
	s.removedID = documentID
	s.removedChunks = chunkCount
	return nil
}

// setupTestServices wires stub services into the command package and
// returns a cleanup that restores the previous state.
func setupTestServices() func() {
	prevRAG := ragService
	prevDoc := documentService
	prevAnalytics := analyticsService

	ragService = &stubRAGService{stats: domain.IndexStats{TotalDocuments: 3, EmbeddingDimension: 768}}
	documentService = &stubDocumentService{}
	analyticsService = services.NewAnalyticsEngine()

	return func() {
		ragService = prevRAG
		documentService = prevDoc
		analyticsService = prevAnalytics
	}
}
