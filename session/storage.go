package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage is a small string key/value store.
type Storage interface {
	// Get returns the value stored for key, and false if there is none.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// FilePrefix is the prefix of every session file.
const FilePrefix = "arthik-session-"

// FileStorage stores each key in its own file, readable only by the current
// user. The files live in Dir, or in the OS temp dir when Dir is empty, so the
// session survives restarts of the process but not of the machine.
type FileStorage struct {
	Dir string
}

func (s FileStorage) path(key string) string {
	dir := s.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, FilePrefix+key)
}

func (s FileStorage) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cannot read session %q: %w", key, err)
	}
	return string(data), true, nil
}

func (s FileStorage) Set(key, value string) error {
	if err := os.WriteFile(s.path(key), []byte(value), 0600); err != nil {
		return fmt.Errorf("cannot write session %q: %w", key, err)
	}
	return nil
}

func (s FileStorage) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot delete session %q: %w", key, err)
	}
	return nil
}

// MemoryStorage is a Storage that lives as long as the process.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
