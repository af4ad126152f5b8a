package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
)

var (
	querySources  int
	queryDocument string
	queryJSON     bool
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question about indexed documents",
	Long: `Retrieves the chunks most relevant to the question and asks the
configured language model for an answer grounded in those chunks.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&querySources, "sources", "n", 5, "number of source chunks to retrieve")
	queryCmd.Flags().StringVar(&queryDocument, "document", "", "restrict retrieval to a single document ID")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the full answer as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if ragService == nil {
		return errors.New("RAG service not configured")
	}

	var filter map[string]any
	if queryDocument != "" {
		filter = map[string]any{domain.MetaDocumentID: queryDocument}
	}

	answer, err := ragService.Query(cmd.Context(), args[0], querySources, filter)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Answer)

	if answer.NumSources > 0 {
		cmd.Println()
		cmd.Printf("Sources (%d, model %s, %.2fs):\n", answer.NumSources, answer.ModelUsed, answer.ProcessingTime.Seconds())
		for i, src := range answer.Sources {
			name := "unknown"
			if v, ok := src.Metadata[domain.MetaFilename].(string); ok && v != "" {
				name = v
			}
			cmd.Printf("  [%d] %s (distance %.3f)\n", i+1, name, src.Distance)
		}
	}

	return nil
}
