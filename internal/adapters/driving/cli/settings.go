package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkharche/FinWise-AI/internal/adapters/driven/ai"
	"github.com/dkharche/FinWise-AI/internal/adapters/driven/config/file"
	"github.com/dkharche/FinWise-AI/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI providers, chunking and storage options.

Settings are stored in ~/.finwise/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long:  `Configure the embedding provider used to index and search documents.`,
	RunE:  runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider used to generate answers.`,
	RunE:  runSettingsLLM,
}

var settingsChunkingCmd = &cobra.Command{
	Use:   "chunking",
	Short: "Configure document chunking",
	RunE:  runSettingsChunking,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsChunkingCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	settings := file.LoadAppSettings(configStore)

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	printProvider(cmd, settings.Embedding.Provider, settings.Embedding.Model,
		settings.Embedding.BaseURL, settings.Embedding.APIKey, settings.Embedding.IsConfigured())
	cmd.Println()

	cmd.Println("[LLM]")
	printProvider(cmd, settings.LLM.Provider, settings.LLM.Model,
		settings.LLM.BaseURL, settings.LLM.APIKey, settings.LLM.IsConfigured())
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Chunk size: %d\n", settings.Chunking.ChunkSize)
	cmd.Printf("  Overlap: %d\n", settings.Chunking.Overlap)
	cmd.Println()

	cmd.Println("[Storage]")
	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "~/.finwise/data (default)"
	}
	cmd.Printf("  Data directory: %s\n", dataDir)
	cmd.Printf("  Ephemeral: %t\n", settings.Storage.Ephemeral)

	return nil
}

func printProvider(cmd *cobra.Command, provider domain.AIProvider, model, baseURL, apiKey string, configured bool) {
	cmd.Printf("  Provider: %s\n", provider.Description())
	cmd.Printf("  Model: %s\n", model)
	if provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	settings := file.LoadAppSettings(configStore)

	cmd.Println("Select Embedding Provider")
	providers := []domain.AIProvider{domain.AIProviderOllama, domain.AIProviderOpenAI}
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	defaults := map[domain.AIProvider]string{
		domain.AIProviderOllama: "nomic-embed-text",
		domain.AIProviderOpenAI: "text-embedding-3-small",
	}
	model, baseURL, apiKey, err := promptProviderDetails(cmd, reader, provider, defaults[provider])
	if err != nil {
		return err
	}

	settings.Embedding = domain.EmbeddingSettings{
		Provider: provider,
		Model:    model,
		BaseURL:  baseURL,
		APIKey:   apiKey,
	}

	cmd.Print("Validating configuration... ")
	svc, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	if svc != nil {
		svc.Close()
	}
	cmd.Println("OK")

	if err := file.SaveAppSettings(configStore, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Embedding provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	settings := file.LoadAppSettings(configStore)

	cmd.Println("Select LLM Provider")
	providers := []domain.AIProvider{domain.AIProviderOllama, domain.AIProviderOpenAI, domain.AIProviderAnthropic}
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	defaults := map[domain.AIProvider]string{
		domain.AIProviderOllama:    "llama3.2",
		domain.AIProviderOpenAI:    "gpt-4o-mini",
		domain.AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
	model, baseURL, apiKey, err := promptProviderDetails(cmd, reader, provider, defaults[provider])
	if err != nil {
		return err
	}

	settings.LLM = domain.LLMSettings{
		Provider: provider,
		Model:    model,
		BaseURL:  baseURL,
		APIKey:   apiKey,
	}

	cmd.Print("Validating configuration... ")
	svc, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	if svc != nil {
		svc.Close()
	}
	cmd.Println("OK")

	if err := file.SaveAppSettings(configStore, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("LLM provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func runSettingsChunking(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	settings := file.LoadAppSettings(configStore)

	cmd.Printf("Chunk size [%d]: ", settings.Chunking.ChunkSize)
	if input := readLine(reader); input != "" {
		size, err := strconv.Atoi(input)
		if err != nil || size <= 0 {
			return errors.New("chunk size must be a positive integer")
		}
		settings.Chunking.ChunkSize = size
	}

	cmd.Printf("Overlap [%d]: ", settings.Chunking.Overlap)
	if input := readLine(reader); input != "" {
		overlap, err := strconv.Atoi(input)
		if err != nil || overlap < 0 {
			return errors.New("overlap must be a non-negative integer")
		}
		settings.Chunking.Overlap = overlap
	}

	if settings.Chunking.Overlap >= settings.Chunking.ChunkSize {
		return errors.New("overlap must be smaller than chunk size")
	}

	if err := file.SaveAppSettings(configStore, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Chunking configured: size %d, overlap %d\n",
		settings.Chunking.ChunkSize, settings.Chunking.Overlap)
	return nil
}

// promptProviderDetails asks for model, base URL and API key as the
// provider requires.
func promptProviderDetails(
	cmd *cobra.Command, reader *bufio.Reader, provider domain.AIProvider, defaultModel string,
) (model, baseURL, apiKey string, err error) {
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model = readLine(reader)
	if model == "" {
		model = defaultModel
	}

	if provider.IsLocal() {
		cmd.Print("Enter base URL [http://localhost:11434]: ")
		baseURL = readLine(reader)
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
	}

	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return "", "", "", errors.New("API key is required for this provider")
		}
	}

	return model, baseURL, apiKey, nil
}

// Prompt helpers. Read errors are swallowed: an interrupted read
// behaves like accepting the default.

//nolint:errcheck
func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// parseChoice maps a menu answer to a 1-based index, falling back to
// defaultVal on empty or out-of-range input.
func parseChoice(input string, maxVal, defaultVal int) int {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > maxVal {
		return defaultVal
	}
	return n
}

// readPassword reads without echo when stdin is a terminal, so API
// keys never land in scrollback. Piped input is read as a plain line.
//
//nolint:errcheck
func readPassword() string {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		if secret, err := term.ReadPassword(fd); err == nil {
			return string(secret)
		}
	}
	return readLine(bufio.NewReader(os.Stdin))
}

// maskAPIKey keeps only the first and last four characters. Keys too
// short to mask safely are hidden entirely.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
