// Package service defines the task types and the backend-agnostic task store interface.
package service

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the referenced task does not exist.
	ErrNotFound = errors.New("task not found")

	// ErrEmptyText indicates empty or whitespace-only task text.
	ErrEmptyText = errors.New("text required")

	// ErrNotSaved indicates the in-memory change was applied but could not be persisted.
	ErrNotSaved = errors.New("changes not saved")
)

// Service defines the task store operations used by the presentation layer.
// Commands and the terminal UI never touch the key-value store directly.
//
// Mutators update in-memory state first and then persist the whole collection
// (or the mode flag). When persisting fails the in-memory change is kept and
// the returned error wraps ErrNotSaved.
type Service interface {
	// Load reads the persisted collection and replaces the in-memory one.
	// Read errors and malformed data are logged and yield an empty collection.
	Load(ctx context.Context) *Collection

	// Save replaces the in-memory collection and overwrites the persisted blob.
	Save(ctx context.Context, c *Collection) error

	// LoadMode reads the persisted mode flag. Defaults to Work.
	LoadMode(ctx context.Context) Mode

	// SetMode updates and persists the mode flag.
	SetMode(ctx context.Context, m Mode) error

	// Mode returns the current in-memory mode.
	Mode() Mode

	// Tasks returns a snapshot of the collection.
	Tasks() *Collection

	// Visible returns the tasks of the current mode in collection order.
	Visible() []Task

	// Get returns a task by ID.
	Get(id string) (Task, bool)

	// Add creates a task in the given mode. Returns ErrEmptyText for blank text.
	Add(ctx context.Context, text string, m Mode) (Task, error)

	// ToggleComplete flips the completed flag. Returns ErrNotFound for a missing ID.
	ToggleComplete(ctx context.Context, id string) (Task, error)

	// Update replaces the text. Returns ErrNotFound or ErrEmptyText.
	Update(ctx context.Context, id, text string) (Task, error)

	// Remove deletes a task. A missing ID is a no-op.
	Remove(ctx context.Context, id string) error
}
