package catalog

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Jay-Patell/AuctionBotLeague/internal/model"
)

// Catalog holds the ordered pool of unsold items. Items are auctioned in
// insertion order (first loaded, first drawn). A drawn item stays exclusively
// held by the catalog until it is sold off or marked unsold; unsold items are
// kept aside and only re-enter the queue through RequeueUnsold.
type Catalog struct {
	mu      sync.RWMutex
	pending []model.Item
	unsold  []model.Item
	current *model.Item
	logger  *slog.Logger
}

// New creates an empty catalog.
func New(logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{logger: logger}
}

// FromState restores a catalog from persisted lists.
func FromState(st model.State, logger *slog.Logger) *Catalog {
	c := New(logger)
	c.pending = append([]model.Item(nil), st.Pending...)
	c.unsold = append([]model.Item(nil), st.Unsold...)
	return c
}

// Add appends an item to the tail of the pending queue.
func (c *Catalog) Add(item model.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, item)
}

// DrawNext removes and returns the head of the pending queue. The returned
// item becomes the currently-held one. ok is false when the queue is empty.
func (c *Catalog) DrawNext() (item model.Item, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pending) == 0 {
		return model.Item{}, false
	}
	item = c.pending[0]
	c.pending = c.pending[1:]
	c.current = &item
	return item, true
}

// MarkUnsold sets the currently-held item aside in the unsold pool. It does
// not re-enter the pending queue automatically.
func (c *Catalog) MarkUnsold(item model.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.unsold = append(c.unsold, item)
	if c.current != nil && c.current.ID == item.ID {
		c.current = nil
	}
}

// RemovePermanently drops the currently-held item after a sale. Only the held
// item can be removed this way.
func (c *Catalog) RemovePermanently(itemID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || c.current.ID != itemID {
		return fmt.Errorf("item %s is not under auction: %w", itemID, model.ErrNotFound)
	}
	c.current = nil
	return nil
}

// Current returns the currently-held item, if any.
func (c *Catalog) Current() (model.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return model.Item{}, false
	}
	return *c.current, true
}

// RequeueUnsold moves the whole unsold pool to the tail of the pending queue
// in unsold order, returning how many items moved.
func (c *Catalog) RequeueUnsold() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	moved := len(c.unsold)
	c.pending = append(c.pending, c.unsold...)
	c.unsold = nil
	if moved > 0 {
		c.logger.Info("unsold items requeued", "count", moved)
	}
	return moved
}

// RemovePending deletes an item from the pending queue by ID.
func (c *Catalog) RemovePending(itemID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.pending {
		if item.ID == itemID {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("item %s not pending: %w", itemID, model.ErrNotFound)
}

// Clear empties the pending queue.
func (c *Catalog) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.pending)
	c.pending = nil
	return n
}

// IsEmpty reports whether the pending queue is exhausted.
func (c *Catalog) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pending) == 0
}

// Pending returns a copy of the pending queue in draw order.
func (c *Catalog) Pending() []model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Item(nil), c.pending...)
}

// Unsold returns a copy of the unsold pool.
func (c *Catalog) Unsold() []model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Item(nil), c.unsold...)
}

// Export returns the durable view of the catalog. A currently-held item is
// written back at the head of the pending list so a restart re-draws it
// instead of losing it.
func (c *Catalog) Export() (pending, unsold []model.Item) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current != nil {
		pending = append(pending, *c.current)
	}
	pending = append(pending, c.pending...)
	unsold = append([]model.Item(nil), c.unsold...)
	return pending, unsold
}
