// Package store holds the per-entity state containers the view layer binds
// to. Each container tracks a collection, an optional selection, and the
// status of every operation category, with transitions mirroring the
// start/success/failure lifecycle of a gateway call.
package store

import "sync"

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Container is a state container for one entity collection. All methods are
// safe for concurrent use; when two operations race, the one that resolves
// last wins, matching the event-loop semantics of the UI it serves.
type Container[E any] struct {
	mu       sync.Mutex
	idOf     func(E) int64
	items    []E
	selected *E
	status   map[string]Status
	err      string
}

// New builds a container; idOf extracts the entity's identity, used for
// upsert and delete transitions.
func New[E any](idOf func(E) int64) *Container[E] {
	return &Container[E]{idOf: idOf, status: make(map[string]Status)}
}

// Begin marks an operation as loading and clears the last error.
func (c *Container[E]) Begin(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status[op] = StatusLoading
	c.err = ""
}

// SucceedList replaces the collection, for fetch-style operations.
func (c *Container[E]) SucceedList(op string, items []E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]E(nil), items...)
	c.status[op] = StatusSucceeded
}

// Succeed upserts one entity by id, for create/update-style operations.
func (c *Container[E]) Succeed(op string, item E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.upsertLocked(item)
	c.status[op] = StatusSucceeded
}

// SucceedDelete removes the entity with the given id, for delete-style
// operations. An absent id still succeeds.
func (c *Container[E]) SucceedDelete(op string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
	c.status[op] = StatusSucceeded
}

// Fail records the failure message; the collection is left as it was.
func (c *Container[E]) Fail(op, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status[op] = StatusFailed
	c.err = message
}

// Reset returns an operation to idle after the view has shown its outcome.
func (c *Container[E]) Reset(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status[op] = StatusIdle
}

func (c *Container[E]) Status(op string) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.status[op]; ok {
		return s
	}
	return StatusIdle
}

func (c *Container[E]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Container[E]) Items() []E {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]E(nil), c.items...)
}

func (c *Container[E]) Select(item E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = &item
}

func (c *Container[E]) ClearSelected() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

func (c *Container[E]) Selected() (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		var zero E
		return zero, false
	}
	return *c.selected, true
}

// Upsert and Remove mutate the collection without touching any status.
// They exist for optimistic updates: apply the change locally, call the
// gateway, and roll back with the opposite call if it fails.

func (c *Container[E]) Upsert(item E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.upsertLocked(item)
}

func (c *Container[E]) Remove(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

func (c *Container[E]) upsertLocked(item E) {
	id := c.idOf(item)
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

func (c *Container[E]) removeLocked(id int64) {
	kept := c.items[:0]
	for _, item := range c.items {
		if c.idOf(item) != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
}
