package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dkharche/FinWise-AI/internal/adapters/driven/vectorstore/sqlite/migrations"
	"github.com/dkharche/FinWise-AI/internal/core/domain"
	"github.com/dkharche/FinWise-AI/internal/core/ports/driven"
	"github.com/dkharche/FinWise-AI/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is a SQLite-backed vector index. The embedding service it owns
// encodes texts on Add and queries on Search.
type Index struct {
	dataDir  string
	embedder driven.EmbeddingService

	initGroup   singleflight.Group
	initialized atomic.Bool

	// writeMu serialises Add batches so writes targeting the same ids
	// never interleave.
	writeMu sync.Mutex

	db   *sql.DB
	path string
}

// NewIndex creates a new index rooted at dataDir.
// If dataDir is empty, defaults to ~/.finwise/data.
// No I/O happens until Initialize.
func NewIndex(dataDir string, embedder driven.EmbeddingService) *Index {
	return &Index{
		dataDir:  dataDir,
		embedder: embedder,
	}
}

// Initialize opens the database, runs migrations and validates the
// embedding service. Concurrent first calls collapse into a single
// setup; calling again after success is a no-op.
func (x *Index) Initialize(ctx context.Context) error {
	if x.initialized.Load() {
		return nil
	}

	_, err, _ := x.initGroup.Do("init", func() (any, error) {
		if x.initialized.Load() {
			return nil, nil
		}
		if err := x.setup(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInitialization, err)
		}
		x.initialized.Store(true)
		return nil, nil
	})
	return err
}

func (x *Index) setup(ctx context.Context) error {
	if x.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	dataDir := x.dataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".finwise", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vectors.db")

	// WAL mode keeps reads concurrent with the serialised writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if err := migrate(ctx, db, migrations.FS); err != nil {
		db.Close()
		return fmt.Errorf("running migrations: %w", err)
	}

	if err := x.embedder.Ping(ctx); err != nil {
		db.Close()
		return fmt.Errorf("embedding service: %w", err)
	}

	x.db = db
	x.path = dbPath
	logger.Info("Vector index initialised at %s (model %s, %d dimensions)",
		dbPath, x.embedder.ModelName(), x.embedder.Dimensions())
	return nil
}

// Add embeds texts in one batch and inserts every entry inside a single
// transaction: either the whole batch lands or none of it. Any ID that
// already exists (in the batch or in the store) rejects the batch with
// domain.ErrDuplicateID.
func (x *Index) Add(ctx context.Context, texts []string, metadatas []map[string]any, ids []string) error {
	if err := x.Initialize(ctx); err != nil {
		return err
	}
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

	x.writeMu.Lock()
	defer x.writeMu.Unlock()

	logger.Debug("Embedding %d texts for insert", len(texts))
	vectors, err := x.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", domain.ErrStorage, err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (id, document, metadata, embedding)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing statement: %w", domain.ErrStorage, err)
	}
	defer stmt.Close()

	for i, id := range ids {
		var exists int
		row := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries WHERE id = ?", id)
		if err := row.Scan(&exists); err != nil {
			return fmt.Errorf("%w: checking id: %w", domain.ErrStorage, err)
		}
		if exists > 0 {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateID, id)
		}

		metadataJSON, err := json.Marshal(metadatas[i])
		if err != nil {
			return fmt.Errorf("%w: marshalling metadata: %w", domain.ErrStorage, err)
		}

		if _, err := stmt.ExecContext(ctx, id, texts[i],
			string(metadataJSON), float32SliceToBytes(vectors[i])); err != nil {
			return fmt.Errorf("%w: inserting entry: %w", domain.ErrStorage, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %w", domain.ErrStorage, err)
	}

	logger.Info("Added %d entries to vector index", len(ids))
	return nil
}

// Search embeds the query and scans the collection for the n nearest
// entries by cosine distance. A non-nil filter restricts results to
// entries whose metadata exactly matches every filter field.
func (x *Index) Search(
	ctx context.Context, query string, n int, filter map[string]any,
) ([]domain.SearchResult, error) {
	if err := x.Initialize(ctx); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", domain.ErrInvalidInput, n)
	}

	queryVec, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
	}

	rows, err := x.db.QueryContext(ctx, "SELECT id, document, metadata, embedding FROM entries")
	if err != nil {
		return nil, fmt.Errorf("%w: querying entries: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var (
			id, document, metadataJSON string
			embeddingBlob              []byte
		)
		if err := rows.Scan(&id, &document, &metadataJSON, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("%w: scanning entry: %w", domain.ErrStorage, err)
		}

		var metadata map[string]any
		if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
			return nil, fmt.Errorf("%w: decoding metadata for %s: %w", domain.ErrStorage, id, err)
		}
		if !matchesFilter(metadata, filter) {
			continue
		}

		results = append(results, domain.SearchResult{
			ID:       id,
			Document: document,
			Metadata: metadata,
			Distance: cosineDistance(queryVec, bytesToFloat32Slice(embeddingBlob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating entries: %w", domain.ErrStorage, err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if len(results) > n {
		results = results[:n]
	}
	if results == nil {
		results = []domain.SearchResult{}
	}

	logger.Debug("Search returned %d results", len(results))
	return results, nil
}

// Delete removes the entries with the given IDs. Unknown IDs are ignored.
func (x *Index) Delete(ctx context.Context, ids []string) error {
	if err := x.Initialize(ctx); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	x.writeMu.Lock()
	defer x.writeMu.Unlock()

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	if _, err := x.db.ExecContext(ctx,
		"DELETE FROM entries WHERE id IN ("+placeholders+")", args...); err != nil {
		return fmt.Errorf("%w: deleting entries: %w", domain.ErrStorage, err)
	}
	return nil
}

// Stats reports the entry count and the embedding dimension.
func (x *Index) Stats(ctx context.Context) (domain.IndexStats, error) {
	if err := x.Initialize(ctx); err != nil {
		return domain.IndexStats{}, err
	}

	var count int
	row := x.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries")
	if err := row.Scan(&count); err != nil {
		return domain.IndexStats{}, fmt.Errorf("%w: counting entries: %w", domain.ErrStorage, err)
	}

	return domain.IndexStats{
		TotalDocuments:     count,
		EmbeddingDimension: x.embedder.Dimensions(),
	}, nil
}

// Clear drops and recreates the collection.
func (x *Index) Clear(ctx context.Context) error {
	if err := x.Initialize(ctx); err != nil {
		return err
	}

	x.writeMu.Lock()
	defer x.writeMu.Unlock()

	if _, err := x.db.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("%w: clearing entries: %w", domain.ErrStorage, err)
	}
	logger.Warn("Vector index cleared")
	return nil
}

// Close closes the database connection.
func (x *Index) Close() error {
	if x.db == nil {
		return nil
	}
	return x.db.Close()
}

// Path returns the database file path, empty before initialisation.
func (x *Index) Path() string {
	return x.path
}

// migrate runs all pending .up.sql migrations in lexical order.
func migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// matchesFilter reports whether metadata exactly matches every filter
// field. A nil or empty filter matches everything. Numeric values are
// compared as float64 because JSON round-trips integers that way.
func matchesFilter(metadata, filter map[string]any) bool {
	for key, want := range filter {
		got, ok := metadata[key]
		if !ok {
			return false
		}
		if normaliseNumber(got) != normaliseNumber(want) {
			return false
		}
	}
	return true
}

func normaliseNumber(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

// cosineDistance returns 1 - cosine similarity, so 0 means identical
// direction and lower is better. Mismatched or zero vectors are treated
// as maximally distant.
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

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
