// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"
)

// FakeKV is an in-memory kv.Store with error injection for tests.
type FakeKV struct {
	mu   sync.RWMutex
	data map[string]string

	// Error injection. GetErr and SetErr apply to every key;
	// the per-key maps take precedence.
	GetErr    error
	SetErr    error
	GetKeyErr map[string]error
	SetKeyErr map[string]error

	// Sets counts successful writes per key.
	Sets map[string]int

	// Closed is set by Close.
	Closed bool
}

// NewFakeKV creates an empty FakeKV.
func NewFakeKV() *FakeKV {
	return &FakeKV{
		data:      make(map[string]string),
		GetKeyErr: make(map[string]error),
		SetKeyErr: make(map[string]error),
		Sets:      make(map[string]int),
	}
}

// Put stores a value directly, bypassing error injection and write counting.
func (f *FakeKV) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

// Value returns the stored value, bypassing error injection.
func (f *FakeKV) Value(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data[key]
	return v, ok
}

// SetCount returns the number of successful writes to key.
func (f *FakeKV) SetCount(key string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.Sets[key]
}

// Get implements kv.Store.
func (f *FakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if err := f.GetKeyErr[key]; err != nil {
		return "", false, err
	}
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

// Set implements kv.Store.
func (f *FakeKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SetKeyErr[key]; err != nil {
		return err
	}
	if f.SetErr != nil {
		return f.SetErr
	}
	f.data[key] = value
	f.Sets[key]++
	return nil
}

// Close implements kv.Store.
func (f *FakeKV) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
