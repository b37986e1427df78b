package storage

import (
	"bytes"
	"sync"
)

// MemoryStore is a process-local store used when no durable backend is
// available and in tests. Progress is lost on exit.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

// NewMemory creates an empty store.
func NewMemory() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

// LoadItem returns a copy of the stored value, or nil if absent.
func (s *MemoryStore) LoadItem(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	return bytes.Clone(data), nil
}

// SaveItem stores a copy of the value. Nil data deletes the key.
func (s *MemoryStore) SaveItem(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if data == nil {
		delete(s.items, key)
		return nil
	}
	s.items[key] = bytes.Clone(data)
	return nil
}
