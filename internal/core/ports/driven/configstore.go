package driven

// ConfigStore persists user configuration as flat dot-notation keys
// (e.g. "llm.provider", "chunking.chunk_size"). Typed getters return
// the zero value when the key is absent or has the wrong type; callers
// that need to distinguish absence use Get.
type ConfigStore interface {
	// Get returns the raw value for a key and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns the string value for a key, or "".
	GetString(key string) string

	// GetInt returns the integer value for a key, or 0.
	GetInt(key string) int

	// GetBool returns the boolean value for a key, or false.
	GetBool(key string) bool

	// Set stores a value under a key. The change is persisted immediately.
	Set(key string, value any) error

	// Save writes the current configuration to backing storage.
	Save() error

	// Load re-reads configuration from backing storage.
	Load() error

	// Path returns the location of the backing store, for display.
	Path() string
}
