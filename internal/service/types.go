// Package service defines the task types and the backend-agnostic task store interface.
package service

import (
	"fmt"
	"strings"
)

// Mode is the active list context. Work and Travel are the only modes.
type Mode bool

const (
	// Work is the default mode. Persisted as true.
	Work Mode = true

	// Travel is persisted as false.
	Travel Mode = false
)

// String returns "Work" or "Travel".
func (m Mode) String() string {
	if m == Work {
		return "Work"
	}
	return "Travel"
}

// Letter returns the list letter used in task references ('w' or 't').
func (m Mode) Letter() rune {
	if m == Work {
		return 'w'
	}
	return 't'
}

// Other returns the opposite mode.
func (m Mode) Other() Mode {
	return !m
}

// ParseMode parses a mode name (case-insensitive, trimmed).
// Accepts "work", "w", "travel" and "t".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "work", "w":
		return Work, nil
	case "travel", "t":
		return Travel, nil
	}
	return Work, fmt.Errorf("invalid mode: %s", s)
}

// Task represents a single to-do entry.
type Task struct {
	ID        string
	Text      string
	Mode      Mode
	Completed bool
}

// Collection maps task IDs to tasks and remembers insertion order.
// The zero value is an empty collection ready to use.
type Collection struct {
	ids  []string
	byID map[string]Task
}

// NewCollection creates a collection holding tasks in the given order.
// A later task with a duplicate ID replaces the earlier one in place.
func NewCollection(tasks ...Task) *Collection {
	c := &Collection{}
	for _, t := range tasks {
		c.Put(t)
	}
	return c
}

// Len returns the number of tasks.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}

// Get returns the task with the given ID.
func (c *Collection) Get(id string) (Task, bool) {
	if c == nil {
		return Task{}, false
	}
	t, ok := c.byID[id]
	return t, ok
}

// Has reports whether a task with the given ID exists.
func (c *Collection) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// Put inserts a task at the end, or replaces an existing task with the same ID
// without changing its position.
func (c *Collection) Put(t Task) {
	if c.byID == nil {
		c.byID = make(map[string]Task)
	}
	if _, exists := c.byID[t.ID]; !exists {
		c.ids = append(c.ids, t.ID)
	}
	c.byID[t.ID] = t
}

// Delete removes the task with the given ID. Reports whether it existed.
func (c *Collection) Delete(id string) bool {
	if c == nil {
		return false
	}
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, existing := range c.ids {
		if existing == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
	return true
}

// IDs returns task IDs in collection order.
func (c *Collection) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, len(c.ids))
	copy(ids, c.ids)
	return ids
}

// All returns all tasks in collection order.
func (c *Collection) All() []Task {
	if c == nil {
		return nil
	}
	tasks := make([]Task, 0, len(c.ids))
	for _, id := range c.ids {
		tasks = append(tasks, c.byID[id])
	}
	return tasks
}

// Filter returns the tasks whose mode equals m, in collection order.
func (c *Collection) Filter(m Mode) []Task {
	if c == nil {
		return nil
	}
	var tasks []Task
	for _, id := range c.ids {
		if t := c.byID[id]; t.Mode == m {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// Clone returns an independent copy.
func (c *Collection) Clone() *Collection {
	return NewCollection(c.All()...)
}

// Equal reports whether both collections hold the same tasks in the same order.
func (c *Collection) Equal(other *Collection) bool {
	if c.Len() != other.Len() {
		return false
	}
	a, b := c.All(), other.All()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
