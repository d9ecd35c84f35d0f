package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps snapshots in a map. Used in tests and when running
// without any persistence backend configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, coleccion string, dest any) error {
	s.mu.RLock()
	raw, ok := s.data[coleccion]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func (s *MemoryStore) Save(_ context.Context, coleccion string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[coleccion] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
