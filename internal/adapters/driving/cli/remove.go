package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var removeChunks int

var removeCmd = &cobra.Command{
	Use:   "remove [document-id]",
	Short: "Remove an indexed document",
	Long: `Removes a document's chunks from the vector index. The chunk count
reported when the document was indexed must be supplied so every entry
is addressed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().IntVar(&removeChunks, "chunks", 0, "number of chunks the document was indexed with (required)")
	removeCmd.MarkFlagRequired("chunks") //nolint:errcheck // Flag exists
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	documentID := args[0]
	if err := documentService.Remove(cmd.Context(), documentID, removeChunks); err != nil {
		return fmt.Errorf("remove %s: %w", documentID, err)
	}

	cmd.Printf("Removed %s (%d chunks)\n", documentID, removeChunks)
	return nil
}
