// Package kv provides the local persistent key-value stores that hold the task blobs.
package kv

import (
	"context"
	"fmt"
	"strings"
)

const (
	// BackendSQLite stores keys in a SQLite database. Default.
	BackendSQLite = "sqlite"

	// BackendFile stores keys in a single JSON object file.
	BackendFile = "file"
)

// Store is a string key-value store.
type Store interface {
	// Get returns the value stored under key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the underlying resources.
	Close() error
}

// Open opens a store of the named backend at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		return NewSQLiteStore(path)
	case BackendFile:
		return NewFileStore(path)
	default:
		return nil, &BackendError{Name: backend}
	}
}

// BackendError reports an unknown backend name.
type BackendError struct {
	Name string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("unknown storage backend: %s", e.Name)
}
