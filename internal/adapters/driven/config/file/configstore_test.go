package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.provider", "ollama"))
	require.NoError(t, store.Set("chunking.chunk_size", 500))
	require.NoError(t, store.Set("storage.ephemeral", true))

	assert.Equal(t, "ollama", store.GetString("llm.provider"))
	assert.Equal(t, 500, store.GetInt("chunking.chunk_size"))
	assert.True(t, store.GetBool("storage.ephemeral"))

	_, ok := store.Get("missing.key")
	assert.False(t, ok)
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("key", "not a number"))

	assert.Equal(t, 0, store.GetInt("key"))
	assert.False(t, store.GetBool("key"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("embedding.model", "nomic-embed-text"))
	require.NoError(t, store.Set("chunking.overlap", 150))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", reloaded.GetString("embedding.model"))
	assert.Equal(t, 150, reloaded.GetInt("chunking.overlap"))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[llm]\nprovider = \"anthropic\"\nmodel = \"claude-3-5-sonnet-latest\"\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", store.GetString("llm.provider"))
	assert.Equal(t, "claude-3-5-sonnet-latest", store.GetString("llm.model"))
}

func TestConfigStore_RestrictedFilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadAppSettings_Defaults(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	settings := LoadAppSettings(store)

	assert.Equal(t, 1000, settings.Chunking.ChunkSize)
	assert.Equal(t, 200, settings.Chunking.Overlap)
	assert.False(t, settings.Embedding.IsConfigured())
	assert.False(t, settings.LLM.IsConfigured())
}

func TestSaveAndLoadAppSettings_RoundTrip(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	want := domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama,
			Model:    "nomic-embed-text",
			BaseURL:  "http://localhost:11434",
		},
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderAnthropic,
			Model:    "claude-3-5-sonnet-latest",
			APIKey:   "test-key",
		},
		Chunking: domain.ChunkingSettings{
			ChunkSize: 750,
			Overlap:   100,
		},
		Storage: domain.StorageSettings{
			DataDir:   "/tmp/finwise-test",
			Ephemeral: true,
		},
	}

	require.NoError(t, SaveAppSettings(store, want))

	got := LoadAppSettings(store)
	assert.Equal(t, want, got)
}

func TestLoadAppSettings_ZeroOverlapRespected(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// An explicit zero overlap must not be replaced by the default.
	require.NoError(t, store.Set(KeyChunkOverlap, 0))

	settings := LoadAppSettings(store)
	assert.Equal(t, 0, settings.Chunking.Overlap)
}
