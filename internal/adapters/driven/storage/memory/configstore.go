package memory

import (
	"maps"
	"slices"
	"sync"

	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps flattened settings keys in memory. It backs tests and
// one-off runs that must not touch the user's config file.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates a config store, optionally seeded with values.
// Later seeds override earlier ones.
func NewConfigStore(seed ...map[string]any) *ConfigStore {
	s := &ConfigStore{values: make(map[string]any)}
	for _, m := range seed {
		maps.Copy(s.values, m)
	}
	return s
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns the value for key if it is a string.
func (s *ConfigStore) GetString(key string) string {
	str, _ := typed[string](s, key)
	return str
}

// GetBool returns the value for key if it is a bool.
func (s *ConfigStore) GetBool(key string) bool {
	b, _ := typed[bool](s, key)
	return b
}

// GetInt returns the numeric value for key truncated to an int.
func (s *ConfigStore) GetInt(key string) int {
	return int(s.number(key))
}

// GetFloat returns the numeric value for key.
func (s *ConfigStore) GetFloat(key string) float64 {
	return s.number(key)
}

func (s *ConfigStore) number(key string) float64 {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

func typed[T any](s *ConfigStore, key string) (T, bool) {
	val, _ := s.Get(key)
	t, ok := val.(T)
	return t, ok
}

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes a configuration value.
func (s *ConfigStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Keys returns all stored keys, sorted.
func (s *ConfigStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

// Load is a no-op; there is nothing to read.
func (s *ConfigStore) Load() error {
	return nil
}

// Path reports the pseudo path ":memory:".
func (s *ConfigStore) Path() string {
	return ":memory:"
}
