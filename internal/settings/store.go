// Package settings keeps process-wide key/value state across runs.
//
// fyne.Preferences satisfies Store directly and persists on every write, so
// the application hands it in unchanged. MemoryStore backs tests.
package settings

import "sync"

const (
	KeyAccessToken  = "imgur_access_token"
	KeyRefreshToken = "imgur_refresh_token"
	KeyCaptureDelay = "capture_delay"
)

type Store interface {
	String(key string) string
	SetString(key, value string)
	IntWithFallback(key string, fallback int) int
	SetInt(key string, value int)
	RemoveValue(key string)
}

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]interface{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]interface{})}
}

func (m *MemoryStore) String(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, _ := m.values[key].(string)
	return s
}

func (m *MemoryStore) SetString(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStore) IntWithFallback(key string, fallback int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key].(int); ok {
		return v
	}
	return fallback
}

func (m *MemoryStore) SetInt(key string, value int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStore) RemoveValue(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}
