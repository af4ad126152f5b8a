package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
	"github.com/dkharche/FinWise-AI/internal/core/ports/driven"
	"github.com/dkharche/FinWise-AI/internal/core/ports/driving"
	"github.com/dkharche/FinWise-AI/internal/logger"
)

// Ensure RAGOrchestrator implements the interface.
var _ driving.RAGService = (*RAGOrchestrator)(nil)

// Generation parameters for grounded answers.
const (
	answerMaxTokens   = 1000
	answerTemperature = 0.7
)

// systemMessage constrains the model to answer only from the supplied
// context. Kept verbatim across releases; answer quality expectations
// are calibrated against it.
const systemMessage = `You are a financial document analysis assistant. Your role is to:
1. Provide accurate answers based ONLY on the provided context
2. If the context doesn't contain enough information, say so clearly
3. Cite specific details from the context when possible
4. Use clear, professional language
5. Format numbers and financial data appropriately
6. Never make up information not present in the context`

// RAGOrchestrator coordinates chunk indexing, retrieval and grounded
// answer generation. It owns one VectorIndex and one LLM handle; the
// LLM may be nil, which disables Query but not indexing.
type RAGOrchestrator struct {
	vectorIndex driven.VectorIndex
	llmService  driven.LLMService

	mu          sync.Mutex
	initialized bool
}

// NewRAGOrchestrator creates a new RAG orchestrator.
// The llmService parameter is optional (can be nil).
func NewRAGOrchestrator(vectorIndex driven.VectorIndex, llmService driven.LLMService) *RAGOrchestrator {
	return &RAGOrchestrator{
		vectorIndex: vectorIndex,
		llmService:  llmService,
	}
}

// Initialize sets up the owned vector index exactly once. Redundant
// calls return immediately; the initialized flag is set only after the
// index reports success, so a failed attempt can be retried.
func (o *RAGOrchestrator) Initialize(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.initialized {
		return nil
	}
	if o.vectorIndex == nil {
		return domain.ErrVectorIndexUnavailable
	}

	logger.Info("Initialising RAG pipeline")
	if err := o.vectorIndex.Initialize(ctx); err != nil {
		return fmt.Errorf("initialise vector index: %w", err)
	}

	o.initialized = true
	return nil
}

// IndexDocument embeds and stores a document's chunks. Entry IDs are
// derived from the document ID and chunk ordinals, and every entry's
// metadata carries document_id and chunk_id in addition to the shared
// document metadata. The underlying add is atomic, so a failure leaves
// the whole document un-indexed and the caller may retry.
func (o *RAGOrchestrator) IndexDocument(
	ctx context.Context, documentID string, chunks []domain.Chunk, metadata map[string]any,
) error {
	if err := o.Initialize(ctx); err != nil {
		return err
	}
	if len(chunks) == 0 {
		return nil
	}

	logger.Section("Document Indexing")
	logger.Info("Indexing %d chunks for document %s", len(chunks), documentID)

	texts := make([]string, len(chunks))
	metadatas := make([]map[string]any, len(chunks))
	ids := make([]string, len(chunks))

	for i, chunk := range chunks {
		texts[i] = chunk.Text
		ids[i] = domain.ChunkEntryID(documentID, chunk.Ordinal)

		entryMeta := make(map[string]any, len(metadata)+2)
		for k, v := range metadata {
			entryMeta[k] = v
		}
		entryMeta[domain.MetaDocumentID] = documentID
		entryMeta[domain.MetaChunkID] = chunk.Ordinal
		metadatas[i] = entryMeta
	}

	if err := o.vectorIndex.Add(ctx, texts, metadatas, ids); err != nil {
		return fmt.Errorf("index document %s: %w", documentID, err)
	}

	logger.Info("Successfully indexed document %s", documentID)
	return nil
}

// Query retrieves the chunks most relevant to the query and delegates
// answer generation to the configured language model. An empty retrieval
// is a normal outcome answered with a fixed no-information response.
// Retrieval and generation failures abort the call; no retry is
// performed here.
func (o *RAGOrchestrator) Query(
	ctx context.Context, query string, nResults int, filter map[string]any,
) (*domain.QueryAnswer, error) {
	start := time.Now()

	if err := o.Initialize(ctx); err != nil {
		return nil, err
	}
	if o.llmService == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if nResults <= 0 {
		nResults = 5
	}

	logger.Section("RAG Query")
	logger.Debug("Query: %q (n=%d)", query, nResults)

	results, err := o.vectorIndex.Search(ctx, query, nResults, filter)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	if len(results) == 0 {
		logger.Info("No relevant chunks found")
		return &domain.QueryAnswer{
			Answer:         domain.NoRelevantInformation,
			Sources:        []domain.SearchResult{},
			ProcessingTime: time.Since(start),
			ModelUsed:      o.llmService.ModelName(),
		}, nil
	}

	contextText := buildContext(results)
	prompt := buildPrompt(query, contextText)

	logger.Debug("Generating answer from %d sources", len(results))
	answer, err := o.llmService.Generate(ctx, prompt, driven.GenerateOptions{
		SystemMessage: systemMessage,
		MaxTokens:     answerMaxTokens,
		Temperature:   answerTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	return &domain.QueryAnswer{
		Answer:         answer,
		Sources:        results,
		ContextUsed:    contextText,
		ProcessingTime: time.Since(start),
		ModelUsed:      o.llmService.ModelName(),
		NumSources:     len(results),
	}, nil
}

// RemoveDocument deletes a document's entries from the index.
// Unknown entry IDs are ignored by the index, so removing a document
// that was never indexed is harmless.
func (o *RAGOrchestrator) RemoveDocument(ctx context.Context, documentID string, chunkCount int) error {
	if err := o.Initialize(ctx); err != nil {
		return err
	}

	ids := make([]string, chunkCount)
	for i := range ids {
		ids[i] = domain.ChunkEntryID(documentID, i)
	}
	if err := o.vectorIndex.Delete(ctx, ids); err != nil {
		return fmt.Errorf("remove document %s: %w", documentID, err)
	}
	return nil
}

// Stats reports the vector index state.
func (o *RAGOrchestrator) Stats(ctx context.Context) (domain.IndexStats, error) {
	if err := o.Initialize(ctx); err != nil {
		return domain.IndexStats{}, err
	}
	return o.vectorIndex.Stats(ctx)
}

// Clear drops every entry from the index.
func (o *RAGOrchestrator) Clear(ctx context.Context) error {
	if err := o.Initialize(ctx); err != nil {
		return err
	}
	logger.Warn("Clearing vector index")
	return o.vectorIndex.Clear(ctx)
}

// buildContext assembles the grounding context from ranked results.
// Each block is labelled with its source position, and filename/page are
// included only when the entry's metadata carries them.
func buildContext(results []domain.SearchResult) string {
	var sb strings.Builder
	for i, result := range results {
		sb.WriteString(fmt.Sprintf("Source %d", i+1))

		filename, hasFile := result.Metadata[domain.MetaFilename].(string)
		if hasFile {
			sb.WriteString(fmt.Sprintf(" (%s", filename))
		}
		if page, ok := result.Metadata[domain.MetaPage]; ok {
			if hasFile {
				sb.WriteString(fmt.Sprintf(" - Page %v)", page))
			} else {
				sb.WriteString(fmt.Sprintf(" (Page %v)", page))
			}
		} else if hasFile {
			sb.WriteString(")")
		}

		sb.WriteString(":\n")
		sb.WriteString(result.Document)
		sb.WriteString("\n\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// buildPrompt embeds the context and the question into the grounding
// prompt template.
func buildPrompt(query, contextText string) string {
	return fmt.Sprintf(`Based on the following context from financial documents, please answer the question accurately and concisely.

Context:
%s

Question: %s

Answer:`, contextText, query)
}
