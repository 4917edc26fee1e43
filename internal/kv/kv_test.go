package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openBackends(t *testing.T) map[string]func() Store {
	t.Helper()
	dir := t.TempDir()
	return map[string]func() Store{
		BackendSQLite: func() Store {
			s, err := NewSQLiteStore(filepath.Join(dir, "todos.db"))
			if err != nil {
				t.Fatalf("NewSQLiteStore: %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
		BackendFile: func() Store {
			s, err := NewFileStore(filepath.Join(dir, "todos.json"))
			if err != nil {
				t.Fatalf("NewFileStore: %v", err)
			}
			return s
		},
	}
}

func TestStore_GetSetReopen(t *testing.T) {
	ctx := context.Background()
	for name, open := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			s := open()

			if _, ok, err := s.Get(ctx, "@toDos"); err != nil || ok {
				t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
			}

			if err := s.Set(ctx, "@toDos", `{"a":1}`); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(ctx, "@working", "false"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(ctx, "@toDos", `{"b":2}`); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}

			reopened := open()
			got, ok, err := reopened.Get(ctx, "@toDos")
			if err != nil || !ok {
				t.Fatalf("Get after reopen: ok=%v err=%v", ok, err)
			}
			if got != `{"b":2}` {
				t.Fatalf("value=%q, want %q", got, `{"b":2}`)
			}
			mode, _, _ := reopened.Get(ctx, "@working")
			if mode != "false" {
				t.Fatalf("mode=%q, want false", mode)
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("redis", filepath.Join(t.TempDir(), "x"))
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if err.Error() != "unknown storage backend: redis" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestOpen_DefaultsToSQLite(t *testing.T) {
	s, err := Open("", filepath.Join(t.TempDir(), "todos.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLiteStore); !ok {
		t.Fatalf("expected *SQLiteStore, got %T", s)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if s.Recovered() != path+CorruptSuffix {
		t.Fatalf("Recovered=%q", s.Recovered())
	}
	if _, ok, _ := s.Get(context.Background(), "@toDos"); ok {
		t.Fatal("expected empty store")
	}
	moved, err := os.ReadFile(path + CorruptSuffix)
	if err != nil || string(moved) != "{not json" {
		t.Fatalf("corrupt file not kept aside: %q %v", moved, err)
	}

	if err := s.Set(context.Background(), "@working", "true"); err != nil {
		t.Fatal(err)
	}
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if reopened.Recovered() != "" {
		t.Fatalf("Recovered=%q after rewrite", reopened.Recovered())
	}
	if got, _, _ := reopened.Get(context.Background(), "@working"); got != "true" {
		t.Fatalf("@working=%q", got)
	}
}

func TestFileStore_WriteFailureKeepsPreviousValue(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	// Parent path is a regular file, so the directory cannot be created.
	s := &FileStore{path: filepath.Join(blocker, "todos.json"), data: map[string]string{"@working": "true"}}

	if err := s.Set(context.Background(), "@working", "false"); err == nil {
		t.Fatal("expected write error")
	}
	got, _, _ := s.Get(context.Background(), "@working")
	if got != "true" {
		t.Fatalf("value=%q after failed write, want true", got)
	}
}

func TestFileStore_FileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(context.Background(), "k", "v"); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("mode=%o, want 600", perm)
	}
}
