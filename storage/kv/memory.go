package kv

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

var _ Store = (*memoryStore)(nil)

// NewMemory returns an empty in-memory Store.
func NewMemory() Store {
	return &memoryStore{data: make(map[string]json.RawMessage)}
}

func (s *memoryStore) Get(key string, v interface{}) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, errors.Wrapf(err, "decoding %q", key)
	}
	return true, nil
}

func (s *memoryStore) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %q", key)
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Remove(key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Has(key string) (bool, error) {
	s.mu.RLock()
	_, ok := s.data[key]
	s.mu.RUnlock()
	return ok, nil
}
