package sqlite

import (
	"context"
	"fmt"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
)

// stubEmbedder produces deterministic vectors derived from the text so
// identical texts embed identically and similarity ordering is stable.
type stubEmbedder struct {
	dims     int
	pingErr  error
	embedErr error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if s.embedErr != nil {
		return nil, s.embedErr
	}
	vec := make([]float32, s.dims)
	h := fnv.New32a()
	for i := range vec {
		h.Write([]byte(text))
		vec[i] = float32(h.Sum32()%1000) / 1000
	}
	return vec, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := s.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int             { return s.dims }
func (s *stubEmbedder) ModelName() string           { return "stub" }
func (s *stubEmbedder) Ping(context.Context) error  { return s.pingErr }
func (s *stubEmbedder) Close() error                { return nil }

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx := NewIndex(t.TempDir(), &stubEmbedder{dims: 8})
	require.NoError(t, idx.Initialize(context.Background()))
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestIndex_Initialize(t *testing.T) {
	t.Run("creates database file", func(t *testing.T) {
		idx := newTestIndex(t)
		assert.NotEmpty(t, idx.Path())
	})

	t.Run("idempotent", func(t *testing.T) {
		idx := newTestIndex(t)
		require.NoError(t, idx.Initialize(context.Background()))
	})

	t.Run("failed ping surfaces as initialisation error", func(t *testing.T) {
		idx := NewIndex(t.TempDir(), &stubEmbedder{dims: 8, pingErr: fmt.Errorf("unreachable")})
		err := idx.Initialize(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInitialization)
	})

	t.Run("nil embedder rejected", func(t *testing.T) {
		idx := NewIndex(t.TempDir(), nil)
		err := idx.Initialize(context.Background())
		assert.ErrorIs(t, err, domain.ErrInitialization)
	})
}

func TestIndex_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("stores entries", func(t *testing.T) {
		idx := newTestIndex(t)
		err := idx.Add(ctx,
			[]string{"alpha text", "beta text"},
			[]map[string]any{{"document_id": "d1"}, {"document_id": "d1"}},
			[]string{"d1_chunk_0", "d1_chunk_1"},
		)
		require.NoError(t, err)

		stats, err := idx.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.TotalDocuments)
	})

	t.Run("mismatched lengths rejected", func(t *testing.T) {
		idx := newTestIndex(t)
		err := idx.Add(ctx, []string{"a"}, []map[string]any{{}, {}}, []string{"id1"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate id within batch rejected", func(t *testing.T) {
		idx := newTestIndex(t)
		err := idx.Add(ctx,
			[]string{"a", "b"},
			[]map[string]any{{}, {}},
			[]string{"same", "same"},
		)
		assert.ErrorIs(t, err, domain.ErrDuplicateID)
	})

	t.Run("duplicate id against store rejected atomically", func(t *testing.T) {
		idx := newTestIndex(t)
		require.NoError(t, idx.Add(ctx,
			[]string{"a"}, []map[string]any{{}}, []string{"existing"}))

		err := idx.Add(ctx,
			[]string{"b", "c"},
			[]map[string]any{{}, {}},
			[]string{"fresh", "existing"},
		)
		assert.ErrorIs(t, err, domain.ErrDuplicateID)

		// The whole batch must have been rolled back.
		stats, err := idx.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalDocuments)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		idx := newTestIndex(t)
		require.NoError(t, idx.Add(ctx, nil, nil, nil))
	})

	t.Run("embedding failure wrapped", func(t *testing.T) {
		embedder := &stubEmbedder{dims: 8}
		idx := NewIndex(t.TempDir(), embedder)
		require.NoError(t, idx.Initialize(ctx))
		t.Cleanup(func() { idx.Close() })

		embedder.embedErr = fmt.Errorf("model offline")
		err := idx.Add(ctx, []string{"a"}, []map[string]any{{}}, []string{"id1"})
		assert.ErrorIs(t, err, domain.ErrEmbedding)
	})
}

func TestIndex_Search(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, idx *Index) {
		t.Helper()
		require.NoError(t, idx.Add(ctx,
			[]string{"quarterly revenue grew", "monthly rent payment", "grocery receipt"},
			[]map[string]any{
				{"document_id": "d1", "chunk_id": 0},
				{"document_id": "d1", "chunk_id": 1},
				{"document_id": "d2", "chunk_id": 0},
			},
			[]string{"d1_chunk_0", "d1_chunk_1", "d2_chunk_0"},
		))
	}

	t.Run("exact match ranks first", func(t *testing.T) {
		idx := newTestIndex(t)
		seed(t, idx)

		results, err := idx.Search(ctx, "monthly rent payment", 3, nil)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "d1_chunk_1", results[0].ID)
		assert.InDelta(t, 0, results[0].Distance, 1e-9)

		// Distances sorted ascending.
		for i := 1; i < len(results); i++ {
			assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
		}
	})

	t.Run("n limits result count", func(t *testing.T) {
		idx := newTestIndex(t)
		seed(t, idx)

		results, err := idx.Search(ctx, "revenue", 1, nil)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("metadata filter restricts results", func(t *testing.T) {
		idx := newTestIndex(t)
		seed(t, idx)

		results, err := idx.Search(ctx, "anything", 10, map[string]any{"document_id": "d2"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "d2_chunk_0", results[0].ID)
	})

	t.Run("numeric filter matches json round-trip", func(t *testing.T) {
		idx := newTestIndex(t)
		seed(t, idx)

		results, err := idx.Search(ctx, "anything", 10, map[string]any{"chunk_id": 0})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("empty index returns empty slice", func(t *testing.T) {
		idx := newTestIndex(t)
		results, err := idx.Search(ctx, "anything", 5, nil)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("non-positive n rejected", func(t *testing.T) {
		idx := newTestIndex(t)
		_, err := idx.Search(ctx, "q", 0, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestIndex_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes entries and ignores unknown ids", func(t *testing.T) {
		idx := newTestIndex(t)
		require.NoError(t, idx.Add(ctx,
			[]string{"a", "b"},
			[]map[string]any{{}, {}},
			[]string{"id1", "id2"},
		))

		require.NoError(t, idx.Delete(ctx, []string{"id1", "never-existed"}))

		stats, err := idx.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalDocuments)
	})

	t.Run("empty list is a no-op", func(t *testing.T) {
		idx := newTestIndex(t)
		require.NoError(t, idx.Delete(ctx, nil))
	})
}

func TestIndex_Clear(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)
	require.NoError(t, idx.Add(ctx,
		[]string{"a"}, []map[string]any{{}}, []string{"id1"}))

	require.NoError(t, idx.Clear(ctx))

	stats, err := idx.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalDocuments)
}

func TestIndex_Stats(t *testing.T) {
	idx := newTestIndex(t)
	stats, err := idx.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalDocuments)
	assert.Equal(t, 8, stats.EmbeddingDimension)
}

func TestCosineDistance(t *testing.T) {
	t.Run("identical vectors have zero distance", func(t *testing.T) {
		v := []float32{0.1, 0.2, 0.3}
		assert.InDelta(t, 0, cosineDistance(v, v), 1e-9)
	})

	t.Run("orthogonal vectors have distance one", func(t *testing.T) {
		assert.InDelta(t, 1, cosineDistance([]float32{1, 0}, []float32{0, 1}), 1e-9)
	})

	t.Run("opposite vectors have distance two", func(t *testing.T) {
		assert.InDelta(t, 2, cosineDistance([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	})

	t.Run("zero vector maximally distant", func(t *testing.T) {
		assert.Equal(t, float64(1), cosineDistance([]float32{0, 0}, []float32{1, 1}))
	})
}

func TestFloat32RoundTrip(t *testing.T) {
	original := []float32{0.5, -1.25, 3.14159, 0}
	assert.Equal(t, original, bytesToFloat32Slice(float32SliceToBytes(original)))
}
