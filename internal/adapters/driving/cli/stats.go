package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vector index statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if ragService == nil {
		return errors.New("RAG service not configured")
	}

	stats, err := ragService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	cmd.Println("Vector Index")
	cmd.Printf("  Entries: %d\n", stats.TotalDocuments)
	cmd.Printf("  Embedding dimension: %d\n", stats.EmbeddingDimension)
	return nil
}
