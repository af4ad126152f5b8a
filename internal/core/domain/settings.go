package domain

// AIProvider identifies an AI service provider for embeddings or LLM.
// Selection is always explicit: nothing in the system infers the
// provider from a model name.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API. LLM only; it has
	// no embeddings endpoint.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid reports whether the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	}
	return false
}

// RequiresAPIKey reports whether this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal reports whether this provider runs on the local machine.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable label for settings screens.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	}
	return "Unknown"
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	Provider AIProvider
	Model    string

	// BaseURL overrides the provider endpoint; mainly for Ollama.
	BaseURL string

	// APIKey authenticates with cloud providers.
	APIKey string
}

// IsConfigured reports whether the embedding provider is usable:
// a valid provider, with an API key when the provider needs one.
func (e EmbeddingSettings) IsConfigured() bool {
	return e.Provider.IsValid() && !(e.Provider.RequiresAPIKey() && e.APIKey == "")
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	Provider AIProvider
	Model    string

	// BaseURL overrides the provider endpoint; mainly for Ollama.
	BaseURL string

	// APIKey authenticates with cloud providers.
	APIKey string
}

// IsConfigured reports whether the LLM provider is usable:
// a valid provider, with an API key when the provider needs one.
func (l LLMSettings) IsConfigured() bool {
	return l.Provider.IsValid() && !(l.Provider.RequiresAPIKey() && l.APIKey == "")
}

// ChunkingSettings holds document chunking configuration.
type ChunkingSettings struct {
	// ChunkSize is the target chunk length in characters.
	ChunkSize int

	// Overlap is the number of characters shared between adjacent
	// chunks. Must be strictly less than ChunkSize.
	Overlap int
}

// StorageSettings holds vector store configuration.
type StorageSettings struct {
	// DataDir is the directory holding the vector database.
	// Empty means ~/.finwise/data.
	DataDir string

	// Ephemeral selects the in-memory vector store. Nothing is
	// persisted across runs.
	Ephemeral bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Chunking  ChunkingSettings
	Storage   StorageSettings
}

// DefaultAppSettings returns settings with sensible chunking defaults.
// AI providers are left unconfigured; users set them up explicitly via
// `finwise settings`.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Chunking: ChunkingSettings{
			ChunkSize: 1000,
			Overlap:   200,
		},
	}
}

// EmbeddingDimensions maps known embedding models to their vector size.
// The dimension is fixed for the lifetime of a collection; changing
// models requires rebuilding the index.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		"nomic-embed-text":       768,
		"all-minilm":             384,
	}
}
