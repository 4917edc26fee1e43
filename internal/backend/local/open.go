package local

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"todos/internal/config"
	"todos/internal/kv"
)

// FromConfig creates the config directory, opens the configured key-value
// store and loads the persisted state. Configuration problems are returned
// as *config.Error.
func FromConfig(ctx context.Context, cfg *config.Config, log *slog.Logger, opts ...Option) (*Client, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, err
	}

	store, err := kv.Open(cfg.Backend, cfg.DataPath())
	if err != nil {
		var backendErr *kv.BackendError
		if errors.As(err, &backendErr) {
			return nil, &config.Error{Err: err}
		}
		return nil, fmt.Errorf("open store %s: %w", cfg.DataPath(), err)
	}

	if r, ok := store.(interface{ Recovered() string }); ok && r.Recovered() != "" {
		log.Warn("data file unreadable, starting empty", "path", cfg.DataPath(), "moved_to", r.Recovered())
	}
	path := cfg.DataPath()
	if p, ok := store.(interface{ Path() string }); ok {
		path = p.Path()
	}
	log.Debug("opened store", "backend", cfg.Backend, "path", path)
	opts = append([]Option{WithLogger(log)}, opts...)
	return Open(ctx, store, opts...), nil
}
