// Package cli implements the finwise command-line interface.
//
// Commands hold no business logic; they parse arguments, call the
// driving ports and format the results. Services are injected once at
// startup via SetConfig.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/dkharche/FinWise-AI/internal/core/ports/driven"
	"github.com/dkharche/FinWise-AI/internal/core/ports/driving"
	"github.com/dkharche/FinWise-AI/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Config holds the services the CLI commands depend on.
type Config struct {
	RAGService       driving.RAGService
	DocumentService  driving.DocumentService
	AnalyticsService driving.AnalyticsService
	ConfigStore      driven.ConfigStore
}

// Injected services.
var (
	ragService       driving.RAGService
	documentService  driving.DocumentService
	analyticsService driving.AnalyticsService
	configStore      driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "finwise",
	Short: "AI-powered financial document assistant",
	Long: `FinWise indexes your financial documents (statements, invoices,
receipts) into a local vector database and answers questions about them
using retrieval-augmented generation.

It also provides rule-based analytics over transaction exports:
categorisation, anomaly detection, spending summaries and forecasts.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// SetConfig injects the services used by the commands.
func SetConfig(cfg Config) {
	ragService = cfg.RAGService
	documentService = cfg.DocumentService
	analyticsService = cfg.AnalyticsService
	configStore = cfg.ConfigStore
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
