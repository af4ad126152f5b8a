package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every entry from the vector index",
	Long: `Deletes all indexed document chunks. The index itself remains usable;
documents can be indexed again afterwards.`,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	if ragService == nil {
		return errors.New("RAG service not configured")
	}

	if !clearForce {
		cmd.Print("This removes every indexed document. Continue? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n') //nolint:errcheck // CLI prompt, treat failure as "no"
		if strings.ToLower(strings.TrimSpace(input)) != "y" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := ragService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	cmd.Println("Vector index cleared.")
	return nil
}
