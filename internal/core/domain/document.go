package domain

import (
	"fmt"
	"time"
)

// Document represents a financial document after text extraction.
// It is immutable once extracted; the extraction front end (PDF, OCR)
// is an external collaborator and its output is not re-validated here.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original file name, if known.
	Filename string

	// Text is the full extracted text before chunking.
	Text string

	// Metadata contains source metadata such as page count and
	// table markers, supplied by the extraction collaborator.
	Metadata map[string]any

	// WordCount is the number of whitespace-separated words in Text.
	WordCount int

	// UploadedAt is when the document entered the system.
	UploadedAt time.Time
}

// Chunk is a bounded, ordered slice of a document's text used as the
// unit of retrieval. Chunks are a partition-with-overlap of the source
// text and are owned by the document that produced them.
type Chunk struct {
	// Ordinal is the zero-based, sequential position within the document.
	Ordinal int

	// Text is the trimmed chunk text.
	Text string

	// StartChar is the byte offset of the chunk's start in the source text.
	StartChar int

	// EndChar is the byte offset just past the chunk's end.
	// Always greater than StartChar.
	EndChar int

	// Length is the untrimmed span length in bytes.
	Length int
}

// ChunkEntryID derives the vector index entry ID for a chunk.
// The format "<documentID>_chunk_<ordinal>" is part of the persistence
// contract: any store that keys entries this way is conformant.
func ChunkEntryID(documentID string, ordinal int) string {
	return fmt.Sprintf("%s_chunk_%d", documentID, ordinal)
}

// Metadata keys merged into every index entry for a chunk.
const (
	// MetaDocumentID is the owning document's ID.
	MetaDocumentID = "document_id"

	// MetaChunkID is the chunk ordinal within the document.
	MetaChunkID = "chunk_id"

	// MetaFilename is the source file name, when known.
	MetaFilename = "filename"

	// MetaPage is the source page number, when known.
	MetaPage = "page"
)
