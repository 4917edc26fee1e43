package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore implements Store as one JSON object file.
// Every Set rewrites the whole file through a temp file and rename.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]string

	recovered string
}

// CorruptSuffix is appended to an unreadable data file when it is moved aside.
const CorruptSuffix = ".corrupt"

// NewFileStore opens the file at path. A missing file is an empty store.
// A file that is not a JSON object is moved to path+CorruptSuffix and the
// store starts empty; Recovered reports where it went.
func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("data file path is empty")
	}
	s := &FileStore{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		s.data = make(map[string]string)
		s.recovered = path + CorruptSuffix
		if err := os.Rename(path, s.recovered); err != nil {
			// Left in place; the next Set overwrites it.
			s.recovered = path
		}
		return s, nil
	}
	if s.data == nil {
		s.data = make(map[string]string)
	}
	return s, nil
}

// Path returns the data file path.
func (s *FileStore) Path() string {
	return s.path
}

// Recovered returns the location of an unreadable data file found at open,
// or "" if the file was readable.
func (s *FileStore) Recovered() string {
	return s.recovered
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set implements Store. On a write failure the previous value is kept.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.data)+1)
	for k, v := range s.data {
		next[k] = v
	}
	next[key] = value

	if err := writeFileAtomic(s.path, next); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	s.data = next
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error { return nil }

func writeFileAtomic(path string, data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".todos-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
