// file: internal/kvstore/memory.go
// version: 1.0.0
// guid: 86a64cbd-544b-4849-a6c3-f2db5e91b3f2

package kvstore

import (
	"sort"
	"strings"
	"sync"
)

// MemoryBackend is a process-local Backend with no persistence.
type MemoryBackend struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBackend) Set(key string, value []byte) error {
	m.mu.Lock()
	m.items[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Keys(prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryBackend) Close() error { return nil }
