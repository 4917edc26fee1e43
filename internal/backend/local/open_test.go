package local_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todos/internal/backend/local"
	"todos/internal/config"
	"todos/internal/logger"
	"todos/internal/service"
)

func TestFromConfig_Backends(t *testing.T) {
	for _, backend := range []string{"sqlite", "file"} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "todos"), Backend: backend}

			c, err := local.FromConfig(ctx, cfg, logger.Discard())
			if err != nil {
				t.Fatalf("FromConfig: %v", err)
			}
			if _, err := c.Add(ctx, "Lisbon", service.Travel); err != nil {
				t.Fatal(err)
			}
			if err := c.Close(); err != nil {
				t.Fatal(err)
			}

			if _, err := os.Stat(cfg.DataPath()); err != nil {
				t.Fatalf("data file missing: %v", err)
			}

			again, err := local.FromConfig(ctx, cfg, logger.Discard())
			if err != nil {
				t.Fatal(err)
			}
			defer again.Close()
			if again.Tasks().Len() != 1 {
				t.Fatalf("expected 1 task after reopen, got %d", again.Tasks().Len())
			}
		})
	}
}

func TestFromConfig_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), Backend: "etcd"}

	_, err := local.FromConfig(context.Background(), cfg, logger.Discard())
	var cfgErr *config.Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *config.Error, got %v", err)
	}
	if err.Error() != "unknown storage backend: etcd" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestFromConfig_CorruptDataFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "todos.json"), []byte("{garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{Dir: dir, Backend: "file"}

	var logs bytes.Buffer
	c, err := local.FromConfig(ctx, cfg, logger.New(&logs, "warn", "text"))
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	defer c.Close()

	if c.Tasks().Len() != 0 || c.Mode() != service.Work {
		t.Fatalf("expected empty Work state, got %d tasks in %v", c.Tasks().Len(), c.Mode())
	}
	if !strings.Contains(logs.String(), "data file unreadable") {
		t.Fatalf("expected warning, got %q", logs.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "todos.json.corrupt")); err != nil {
		t.Fatalf("corrupt file not moved aside: %v", err)
	}

	if _, err := c.Add(ctx, "Buy milk", service.Work); err != nil {
		t.Fatalf("Add after recovery: %v", err)
	}
}
