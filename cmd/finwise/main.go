// Command finwise is an AI-powered financial document assistant.
//
// It indexes documents into a local SQLite vector store, answers
// questions about them via retrieval-augmented generation, and runs
// rule-based analytics over transaction exports.
package main

import (
	"fmt"
	"os"

	"github.com/dkharche/FinWise-AI/internal/adapters/driven/ai"
	"github.com/dkharche/FinWise-AI/internal/adapters/driven/config/file"
	memorystore "github.com/dkharche/FinWise-AI/internal/adapters/driven/vectorstore/memory"
	sqlitestore "github.com/dkharche/FinWise-AI/internal/adapters/driven/vectorstore/sqlite"
	"github.com/dkharche/FinWise-AI/internal/adapters/driving/cli"
	"github.com/dkharche/FinWise-AI/internal/chunker"
	"github.com/dkharche/FinWise-AI/internal/core/ports/driven"
	"github.com/dkharche/FinWise-AI/internal/core/services"
	"github.com/dkharche/FinWise-AI/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	settings := file.LoadAppSettings(configStore)

	// AI services are optional at startup: commands that need them fail
	// with a configuration hint, the rest keep working.
	embedder, err := ai.CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		logger.Warn("Embedding service unavailable: %v", err)
	}
	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM service unavailable: %v", err)
	}

	var vectorIndex driven.VectorIndex
	if settings.Storage.Ephemeral {
		vectorIndex = memorystore.NewIndex(embedder)
	} else {
		vectorIndex = sqlitestore.NewIndex(settings.Storage.DataDir, embedder)
	}
	defer vectorIndex.Close()

	splitter, err := chunker.New(
		chunker.WithChunkSize(settings.Chunking.ChunkSize),
		chunker.WithOverlap(settings.Chunking.Overlap),
	)
	if err != nil {
		return fmt.Errorf("invalid chunking settings: %w", err)
	}

	rag := services.NewRAGOrchestrator(vectorIndex, llm)

	cli.SetVersion(version)
	cli.SetConfig(cli.Config{
		RAGService:       rag,
		DocumentService:  services.NewDocumentIngestor(splitter, rag),
		AnalyticsService: services.NewAnalyticsEngine(),
		ConfigStore:      configStore,
	})

	return cli.Execute()
}
