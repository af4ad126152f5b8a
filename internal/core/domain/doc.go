// Package domain defines the core business entities for FinWise.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A financial document after text extraction
//   - Chunk: A retrievable unit of a document's text
//   - SearchResult: A single vector search hit
//   - QueryAnswer: The outcome of a grounded RAG query
//   - Transaction: A financial transaction record for analytics
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
