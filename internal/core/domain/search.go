package domain

import "time"

// SearchResult represents a single vector search hit.
// Results are ephemeral: produced per query, never persisted.
type SearchResult struct {
	// ID is the index entry ID ("<documentID>_chunk_<ordinal>").
	ID string

	// Document is the stored chunk text.
	Document string

	// Metadata is the entry's metadata, including at least
	// document_id and chunk_id.
	Metadata map[string]any

	// Distance is the cosine distance to the query (lower is better).
	Distance float64
}

// QueryAnswer is the outcome of a grounded RAG query.
type QueryAnswer struct {
	// Answer is the generated response, or the fixed no-information
	// answer when retrieval found nothing.
	Answer string

	// Sources are the retrieved chunks the answer is grounded on,
	// best match first. Empty when nothing relevant was found.
	Sources []SearchResult

	// ContextUsed is the assembled context string passed to the model.
	ContextUsed string

	// ProcessingTime is the wall-clock duration of the whole query.
	ProcessingTime time.Duration

	// ModelUsed names the language model that produced the answer.
	ModelUsed string

	// NumSources is len(Sources).
	NumSources int
}

// IndexStats summarises the state of the vector index.
type IndexStats struct {
	// TotalDocuments is the number of stored index entries (chunks).
	TotalDocuments int

	// EmbeddingDimension is the fixed vector dimension of the collection.
	EmbeddingDimension int
}

// NoRelevantInformation is the fixed answer returned when retrieval
// produces no results. This is a normal outcome, not an error.
const NoRelevantInformation = "I couldn't find any relevant information in the documents to answer your question."
