package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dkharche/FinWise-AI/internal/extractor"
)

var indexEntities bool

var indexCmd = &cobra.Command{
	Use:   "index [file]",
	Short: "Index a document for question answering",
	Long: `Reads a text document, splits it into overlapping chunks and stores
them in the local vector index. The returned document ID is needed to
remove the document later.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexEntities, "entities", false, "also print extracted financial entities")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	filename := filepath.Base(path)
	doc, chunks, err := documentService.Ingest(cmd.Context(), filename, string(data), nil)
	if err != nil {
		return fmt.Errorf("index %s: %w", filename, err)
	}

	cmd.Printf("Indexed %s\n", filename)
	cmd.Printf("  Document ID: %s\n", doc.ID)
	cmd.Printf("  Chunks: %d\n", len(chunks))
	cmd.Printf("  Words: %d\n", doc.WordCount)

	if indexEntities {
		entities := extractor.Extract(doc.Text)
		out, err := json.MarshalIndent(entities, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal entities: %w", err)
		}
		cmd.Println()
		cmd.Println("Entities:")
		cmd.Println(string(out))
	}

	return nil
}
