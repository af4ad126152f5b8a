// Package sqlite provides a SQLite-backed implementation of the
// driven.VectorIndex port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. Embeddings are
// stored as little-endian float32 BLOBs alongside the chunk text and a
// JSON metadata column; similarity search is a brute-force cosine scan,
// which is exact and fast enough for the collection sizes a personal
// document corpus produces.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.finwise/data/vectors.db
//
// # Thread Safety
//
// Initialisation is single-flight, write batches are serialised, and
// reads rely on SQLite's WAL mode for concurrency.
package sqlite
