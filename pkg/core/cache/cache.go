// Package cache provides the result cache used by the API layer to avoid
// recomputing comprehensive analyses. The engine core never touches it.
package cache

import "sync"

// Repository is the cache contract: string keys to serialized payloads.
type Repository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Memory is a process-local Repository used in tests and when no Redis
// address is configured.
type Memory struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *Memory) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}
