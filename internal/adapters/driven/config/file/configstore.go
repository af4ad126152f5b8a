// Package file provides a TOML file-backed configuration store.
// Settings live at ~/.finwise/config.toml with owner-only permissions,
// since provider API keys are stored in the same file.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/dkharche/FinWise-AI/internal/core/domain"
	"github.com/dkharche/FinWise-AI/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// Configuration keys.
const (
	KeyEmbeddingProvider = "embedding.provider"
	KeyEmbeddingModel    = "embedding.model"
	KeyEmbeddingBaseURL  = "embedding.base_url"
	KeyEmbeddingAPIKey   = "embedding.api_key"

	KeyLLMProvider = "llm.provider"
	KeyLLMModel    = "llm.model"
	KeyLLMBaseURL  = "llm.base_url"
	KeyLLMAPIKey   = "llm.api_key"

	KeyChunkSize    = "chunking.chunk_size"
	KeyChunkOverlap = "chunking.overlap"

	KeyDataDir   = "storage.data_dir"
	KeyEphemeral = "storage.ephemeral"
)

// ConfigStore keeps configuration as a flat map of dot-notation keys,
// marshalled to TOML on every change. Nested tables in a hand-edited
// file are flattened on load, so both [llm] table form and llm.* key
// form read identically.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore opens the store rooted at configDir, creating the
// directory if needed. An empty configDir means ~/.finwise.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".finwise")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Get returns the raw value for a key and whether it exists.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// GetString returns the string value for a key, or "".
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt returns the integer value for a key, or 0.
// TOML integers decode as int64, so both widths are accepted.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// GetBool returns the boolean value for a key, or false.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// Set stores a value and persists the whole file immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes the TOML file. Caller holds the lock.
func (s *ConfigStore) save() error {
	out, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}
	// 0600: the file carries API keys.
	return os.WriteFile(s.filePath, out, 0600)
}

// Load re-reads the TOML file, flattening any nested tables.
// A missing file leaves the store empty.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]any)
			return nil
		}
		return err
	}

	var parsed map[string]any
	if err := toml.Unmarshal(raw, &parsed); err != nil {
		return err
	}

	s.data = make(map[string]any)
	flattenInto(s.data, "", parsed)
	return nil
}

// flattenInto turns {"a": {"b": 1}} into {"a.b": 1} in dst.
func flattenInto(dst map[string]any, prefix string, src map[string]any) {
	for key, value := range src {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(dst, full, nested)
			continue
		}
		dst[full] = value
	}
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// LoadAppSettings builds AppSettings from the store, filling any unset
// chunking values with defaults. An explicitly stored zero overlap is
// respected; only a missing key falls back to the default.
func LoadAppSettings(store driven.ConfigStore) domain.AppSettings {
	settings := domain.DefaultAppSettings()

	settings.Embedding = domain.EmbeddingSettings{
		Provider: domain.AIProvider(store.GetString(KeyEmbeddingProvider)),
		Model:    store.GetString(KeyEmbeddingModel),
		BaseURL:  store.GetString(KeyEmbeddingBaseURL),
		APIKey:   store.GetString(KeyEmbeddingAPIKey),
	}
	settings.LLM = domain.LLMSettings{
		Provider: domain.AIProvider(store.GetString(KeyLLMProvider)),
		Model:    store.GetString(KeyLLMModel),
		BaseURL:  store.GetString(KeyLLMBaseURL),
		APIKey:   store.GetString(KeyLLMAPIKey),
	}

	if size := store.GetInt(KeyChunkSize); size > 0 {
		settings.Chunking.ChunkSize = size
	}
	if _, ok := store.Get(KeyChunkOverlap); ok {
		settings.Chunking.Overlap = store.GetInt(KeyChunkOverlap)
	}

	settings.Storage.DataDir = store.GetString(KeyDataDir)
	settings.Storage.Ephemeral = store.GetBool(KeyEphemeral)

	return settings
}

// SaveAppSettings writes AppSettings back to the store.
func SaveAppSettings(store driven.ConfigStore, settings domain.AppSettings) error {
	values := map[string]any{
		KeyEmbeddingProvider: settings.Embedding.Provider.String(),
		KeyEmbeddingModel:    settings.Embedding.Model,
		KeyEmbeddingBaseURL:  settings.Embedding.BaseURL,
		KeyEmbeddingAPIKey:   settings.Embedding.APIKey,
		KeyLLMProvider:       settings.LLM.Provider.String(),
		KeyLLMModel:          settings.LLM.Model,
		KeyLLMBaseURL:        settings.LLM.BaseURL,
		KeyLLMAPIKey:         settings.LLM.APIKey,
		KeyChunkSize:         settings.Chunking.ChunkSize,
		KeyChunkOverlap:      settings.Chunking.Overlap,
		KeyDataDir:           settings.Storage.DataDir,
		KeyEphemeral:         settings.Storage.Ephemeral,
	}

	for key, value := range values {
		if err := store.Set(key, value); err != nil {
			return err
		}
	}
	return store.Save()
}
