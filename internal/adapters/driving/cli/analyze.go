package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
	"github.com/dkharche/FinWise-AI/internal/core/services"
)

var (
	analyzeThreshold float64
	analyzeJSON      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [transactions.json]",
	Short: "Categorise transactions and flag anomalies",
	Long: `Reads a JSON array of transactions and runs the rule-based analytics
passes over them: keyword categorisation, anomaly detection and a
spending summary.

Each transaction is an object with "description", "amount" and an
optional "merchant" field.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeThreshold, "threshold", services.DefaultAnomalyThreshold,
		"anomaly threshold in standard deviations")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

// analysisReport is the JSON output shape of the analyze command.
type analysisReport struct {
	Categories []string               `json:"categories"`
	Anomalies  []bool                 `json:"anomalies"`
	Summary    domain.SpendingSummary `json:"summary"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyticsService == nil {
		return errors.New("analytics service not configured")
	}

	transactions, err := readTransactions(args[0])
	if err != nil {
		return err
	}

	report := analysisReport{
		Categories: analyticsService.Categorize(transactions),
		Anomalies:  analyticsService.DetectAnomalies(transactions, analyzeThreshold),
		Summary:    analyticsService.Summarize(transactions),
	}

	if analyzeJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Analysed %d transactions (total %.2f, average %.2f)\n",
		report.Summary.TotalTransactions, report.Summary.TotalAmount, report.Summary.AverageTransaction)
	cmd.Println()

	for i, txn := range transactions {
		flag := ""
		if report.Anomalies[i] {
			flag = "  ANOMALY"
		}
		cmd.Printf("  %-40s %10.2f  %s%s\n", truncate(txn.Description, 40), txn.Amount, report.Categories[i], flag)
	}

	if len(report.Summary.ByCategory) > 0 {
		cmd.Println()
		cmd.Println("By category:")
		for category, agg := range report.Summary.ByCategory {
			cmd.Printf("  %-20s sum %10.2f  count %d  mean %.2f\n", category, agg.Sum, agg.Count, agg.Mean)
		}
	}

	if len(report.Summary.TopMerchants) > 0 {
		cmd.Println()
		cmd.Println("Top merchants:")
		for _, m := range report.Summary.TopMerchants {
			cmd.Printf("  %-20s %10.2f\n", m.Merchant, m.Total)
		}
	}

	return nil
}

func readTransactions(path string) ([]domain.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var transactions []domain.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return transactions, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
