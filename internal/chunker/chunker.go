// Package chunker provides boundary-aware splitting of document text
// into overlapping chunks.
package chunker

import (
	"fmt"
	"strings"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 200

// Splitter splits document text into overlapping, boundary-aware chunks.
// Splitting is a pure function of the text and the configured parameters,
// so a Splitter is safe for concurrent use.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		s.chunkSize = size
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		s.overlap = overlap
	}
}

// New creates a splitter with the given options.
// Parameters that cannot make forward progress (non-positive chunk size,
// negative overlap, or overlap >= chunk size) are rejected with
// domain.ErrInvalidChunking rather than silently clamped.
func New(opts ...Option) (*Splitter, error) {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive",
			domain.ErrInvalidChunking, s.chunkSize)
	}
	if s.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap %d must not be negative",
			domain.ErrInvalidChunking, s.overlap)
	}
	if s.overlap >= s.chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be less than chunk size %d",
			domain.ErrInvalidChunking, s.overlap, s.chunkSize)
	}

	return s, nil
}

// ChunkSize returns the configured chunk size.
func (s *Splitter) ChunkSize() int {
	return s.chunkSize
}

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// Split splits text into chunks. Non-final chunks prefer to end just
// after the last sentence-ending period or newline in their window, as
// long as that boundary lies past half the chunk size - this avoids
// chunks ending mid-sentence without producing degenerate short chunks.
//
// Chunk ordinals are 0..k-1 with no gaps, start offsets are strictly
// increasing, and the chunks' spans cover the text without gaps beyond
// the configured overlap. Empty text yields no chunks.
func (s *Splitter) Split(text string) []domain.Chunk {
	if text == "" {
		return nil
	}

	chunks := make([]domain.Chunk, 0, len(text)/(s.chunkSize-s.overlap)+1)

	start := 0
	for start < len(text) {
		end := start + s.chunkSize
		if end > len(text) {
			end = len(text)
		}

		// Prefer a sentence boundary for every chunk but the last.
		if end < len(text) {
			if rel := strings.LastIndexAny(text[start:end], ".\n"); rel >= 0 && rel > s.chunkSize/2 {
				end = start + rel + 1
			}
		}

		chunks = append(chunks, domain.Chunk{
			Ordinal:   len(chunks),
			Text:      strings.TrimSpace(text[start:end]),
			StartChar: start,
			EndChar:   end,
			Length:    end - start,
		})

		if end == len(text) {
			break
		}

		// Overlap is strictly less than the chunk size, but a boundary
		// break can shrink the span below the overlap; fall back to a
		// non-overlapping step so the cursor always moves forward.
		next := end - s.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}
