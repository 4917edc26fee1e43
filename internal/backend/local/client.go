// Package local implements service.Service on a local key-value store.
package local

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"todos/internal/codec"
	"todos/internal/kv"
	"todos/internal/logger"
	"todos/internal/service"
)

const (
	// TasksKey is the storage key of the serialized task collection.
	TasksKey = "@toDos"

	// ModeKey is the storage key of the serialized mode flag.
	ModeKey = "@working"

	// maxIDAttempts bounds regeneration when a fresh ID collides.
	maxIDAttempts = 3
)

// IDFunc generates task IDs.
type IDFunc func() (string, error)

// NewID returns a time-ordered UUID (version 7).
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithIDFunc sets the ID generator.
func WithIDFunc(f IDFunc) Option {
	return func(c *Client) { c.newID = f }
}

// Client implements service.Service. It owns the in-memory collection and mode
// and writes them through to the key-value store on every change.
type Client struct {
	mu    sync.Mutex
	store kv.Store
	log   *slog.Logger
	newID IDFunc

	tasks *service.Collection
	mode  service.Mode
}

// New creates a client with an empty collection in Work mode.
// Call Load and LoadMode (or Open) to read persisted state.
func New(store kv.Store, opts ...Option) *Client {
	c := &Client{
		store: store,
		log:   logger.Discard(),
		newID: NewID,
		tasks: service.NewCollection(),
		mode:  service.Work,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open creates a client and loads the persisted collection and mode.
func Open(ctx context.Context, store kv.Store, opts ...Option) *Client {
	c := New(store, opts...)
	c.Load(ctx)
	c.LoadMode(ctx)
	return c
}

// Load implements service.Service.
func (c *Client) Load(ctx context.Context) *service.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tasks = service.NewCollection()

	raw, ok, err := c.store.Get(ctx, TasksKey)
	if err != nil {
		c.log.Warn("load tasks failed, starting empty", "key", TasksKey, "error", err)
		return c.tasks.Clone()
	}
	if !ok {
		c.log.Debug("no saved tasks", "key", TasksKey)
		return c.tasks.Clone()
	}

	tasks, err := codec.DecodeTasks([]byte(raw))
	if err != nil {
		c.log.Warn("saved tasks unreadable, starting empty", "key", TasksKey, "error", err)
		return c.tasks.Clone()
	}
	c.tasks = tasks
	c.log.Debug("loaded tasks", "count", tasks.Len())
	return c.tasks.Clone()
}

// Save implements service.Service.
func (c *Client) Save(ctx context.Context, tasks *service.Collection) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tasks = tasks.Clone()
	return c.persistTasks(ctx)
}

// LoadMode implements service.Service.
func (c *Client) LoadMode(ctx context.Context) service.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = service.Work

	raw, ok, err := c.store.Get(ctx, ModeKey)
	if err != nil {
		c.log.Warn("load mode failed, using Work", "key", ModeKey, "error", err)
		return c.mode
	}
	if !ok {
		return c.mode
	}

	mode, err := codec.DecodeMode(raw)
	if err != nil {
		c.log.Warn("saved mode unreadable, using Work", "key", ModeKey, "error", err)
		return c.mode
	}
	c.mode = mode
	return c.mode
}

// SetMode implements service.Service.
func (c *Client) SetMode(ctx context.Context, m service.Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = m
	if err := c.store.Set(ctx, ModeKey, codec.EncodeMode(m)); err != nil {
		c.log.Warn("save mode failed", "mode", m.String(), "error", err)
		return fmt.Errorf("%w: %w", service.ErrNotSaved, err)
	}
	c.log.Debug("saved mode", "mode", m.String())
	return nil
}

// Mode implements service.Service.
func (c *Client) Mode() service.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Tasks implements service.Service.
func (c *Client) Tasks() *service.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasks.Clone()
}

// Visible implements service.Service.
func (c *Client) Visible() []service.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasks.Filter(c.mode)
}

// Get implements service.Service.
func (c *Client) Get(id string) (service.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasks.Get(id)
}

// Add implements service.Service.
func (c *Client) Add(ctx context.Context, text string, m service.Mode) (service.Task, error) {
	if strings.TrimSpace(text) == "" {
		return service.Task{}, service.ErrEmptyText
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.freshID()
	if err != nil {
		return service.Task{}, err
	}

	task := service.Task{ID: id, Text: text, Mode: m}
	c.tasks.Put(task)
	return task, c.persistTasks(ctx)
}

// ToggleComplete implements service.Service.
func (c *Client) ToggleComplete(ctx context.Context, id string) (service.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	task, ok := c.tasks.Get(id)
	if !ok {
		return service.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, id)
	}
	task.Completed = !task.Completed
	c.tasks.Put(task)
	return task, c.persistTasks(ctx)
}

// Update implements service.Service.
func (c *Client) Update(ctx context.Context, id, text string) (service.Task, error) {
	if strings.TrimSpace(text) == "" {
		return service.Task{}, service.ErrEmptyText
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	task, ok := c.tasks.Get(id)
	if !ok {
		return service.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, id)
	}
	task.Text = text
	c.tasks.Put(task)
	return task, c.persistTasks(ctx)
}

// Remove implements service.Service.
func (c *Client) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tasks.Delete(id) {
		c.log.Debug("remove: no such task", "id", id)
		return nil
	}
	return c.persistTasks(ctx)
}

// Close closes the underlying key-value store.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Close()
}

// freshID returns an ID not present in the collection. Caller holds mu.
func (c *Client) freshID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := c.newID()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		if id != "" && !c.tasks.Has(id) {
			return id, nil
		}
	}
	return "", errors.New("generate id: no unique id after retries")
}

// persistTasks overwrites the stored collection. Caller holds mu.
func (c *Client) persistTasks(ctx context.Context) error {
	data, err := codec.EncodeTasks(c.tasks)
	if err != nil {
		return fmt.Errorf("%w: %w", service.ErrNotSaved, err)
	}
	if err := c.store.Set(ctx, TasksKey, string(data)); err != nil {
		c.log.Warn("save tasks failed", "count", c.tasks.Len(), "error", err)
		return fmt.Errorf("%w: %w", service.ErrNotSaved, err)
	}
	c.log.Debug("saved tasks", "count", c.tasks.Len())
	return nil
}
