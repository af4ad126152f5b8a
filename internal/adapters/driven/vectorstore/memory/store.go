// Package memory provides an in-memory vector index.
//
// Entries live in a map guarded by a read-write mutex, so the index is
// safe for concurrent use but loses everything on process exit. It backs
// ephemeral mode and tests; persistent installs use the sqlite index.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
	"github.com/dkharche/FinWise-AI/internal/core/ports/driven"
)

var _ driven.VectorIndex = (*Index)(nil)

type entry struct {
	document  string
	metadata  map[string]any
	embedding []float32
}

// Index is a volatile vector index holding all entries in memory.
type Index struct {
	embedder driven.EmbeddingService

	mu      sync.RWMutex
	entries map[string]entry
}

// NewIndex creates an empty in-memory index backed by the given
// embedding service.
func NewIndex(embedder driven.EmbeddingService) *Index {
	return &Index{
		embedder: embedder,
		entries:  make(map[string]entry),
	}
}

// Initialize validates the embedding service. Safe to call repeatedly.
func (x *Index) Initialize(ctx context.Context) error {
	if x.embedder == nil {
		return fmt.Errorf("%w: %w", domain.ErrInitialization, domain.ErrEmbeddingUnavailable)
	}
	if err := x.embedder.Ping(ctx); err != nil {
		return fmt.Errorf("%w: embedding service: %w", domain.ErrInitialization, err)
	}
	return nil
}

// Add embeds texts and stores every entry, all or nothing. A duplicate ID
// anywhere in the batch or the store rejects the whole batch.
func (x *Index) Add(ctx context.Context, texts []string, metadatas []map[string]any, ids []string) error {
	if len(texts) != len(metadatas) || len(texts) != len(ids) {
		return fmt.Errorf("%w: texts (%d), metadatas (%d) and ids (%d) must have equal length",
			domain.ErrInvalidInput, len(texts), len(metadatas), len(ids))
	}
	if len(texts) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s appears twice in batch", domain.ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}

	vectors, err := x.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	for _, id := range ids {
		if _, exists := x.entries[id]; exists {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateID, id)
		}
	}
	for i, id := range ids {
		x.entries[id] = entry{
			document:  texts[i],
			metadata:  metadatas[i],
			embedding: vectors[i],
		}
	}
	return nil
}

// Search returns the n entries nearest to the query by cosine distance,
// optionally restricted to entries whose metadata matches every filter
// field.
func (x *Index) Search(
	ctx context.Context, query string, n int, filter map[string]any,
) ([]domain.SearchResult, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", domain.ErrInvalidInput, n)
	}

	queryVec, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	results := make([]domain.SearchResult, 0, len(x.entries))
	for id, e := range x.entries {
		if !matchesFilter(e.metadata, filter) {
			continue
		}
		results = append(results, domain.SearchResult{
			ID:       id,
			Document: e.document,
			Metadata: e.metadata,
			Distance: cosineDistance(queryVec, e.embedding),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})
	if len(results) > n {
		results = results[:n]
	}
	return results, nil
}

// Delete removes the entries with the given IDs. Unknown IDs are ignored.
func (x *Index) Delete(_ context.Context, ids []string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, id := range ids {
		delete(x.entries, id)
	}
	return nil
}

// Stats reports the entry count and the embedding dimension.
func (x *Index) Stats(context.Context) (domain.IndexStats, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return domain.IndexStats{
		TotalDocuments:     len(x.entries),
		EmbeddingDimension: x.embedder.Dimensions(),
	}, nil
}

// Clear removes every entry.
func (x *Index) Clear(context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.entries = make(map[string]entry)
	return nil
}

// Close is a no-op, the index holds no external resources.
func (x *Index) Close() error { return nil }

func matchesFilter(metadata, filter map[string]any) bool {
	for key, want := range filter {
		got, ok := metadata[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}

func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
