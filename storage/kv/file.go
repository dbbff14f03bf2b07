package kv

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// fileStore keeps the whole map in memory and rewrites the backing file
// after every mutation. Writes go through a temp file + rename so a crash
// never leaves a half-written state file behind.
type fileStore struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

var _ Store = (*fileStore)(nil)

// OpenFile loads (or creates) the JSON state file at path.
func OpenFile(path string) (Store, error) {
	s := &fileStore{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(raw) > 0 {
		if err = json.Unmarshal(raw, &s.data); err != nil {
			return nil, errors.Wrapf(err, "decoding %s", path)
		}
	}
	return s, nil
}

func (s *fileStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding state")
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}
	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, s.path), "renaming %s", tmp)
}

func (s *fileStore) Get(key string, v interface{}) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, errors.Wrapf(err, "decoding %q", key)
	}
	return true, nil
}

func (s *fileStore) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %q", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.flush()
}

func (s *fileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flush()
}

func (s *fileStore) Has(key string) (bool, error) {
	s.mu.Lock()
	_, ok := s.data[key]
	s.mu.Unlock()
	return ok, nil
}
