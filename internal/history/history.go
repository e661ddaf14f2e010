// Package history keeps undo/redo stacks of committed diagram snapshots.
package history

import (
	"sync"

	"github.com/routeboard/engine/pkg/core"
)

// DefaultLimit is the number of undo steps kept when none is configured
const DefaultLimit = 100

// History is a bounded undo/redo stack. The oldest snapshot is dropped once the limit is hit.
type History struct {
	mu     sync.Mutex
	past   []core.Diagram
	future []core.Diagram
	limit  int
}

// New creates a history holding at most limit undo steps
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Record stores the state before a change and clears the redo stack
func (h *History) Record(before core.Diagram) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.past = append(h.past, before.Clone())
	if over := len(h.past) - h.limit; over > 0 {
		h.past = append(h.past[:0:0], h.past[over:]...)
	}
	h.future = nil
}

// Undo returns the previous state and remembers current for Redo
func (h *History) Undo(current core.Diagram) (core.Diagram, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.past)
	if n == 0 {
		return core.Diagram{}, false
	}
	prev := h.past[n-1]
	h.past = h.past[:n-1]
	h.future = append(h.future, current.Clone())
	return prev.Clone(), true
}

// Redo returns the state undone last and remembers current for Undo
func (h *History) Redo(current core.Diagram) (core.Diagram, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.future)
	if n == 0 {
		return core.Diagram{}, false
	}
	next := h.future[n-1]
	h.future = h.future[:n-1]
	h.past = append(h.past, current.Clone())
	return next.Clone(), true
}

// CanUndo reports whether an undo step exists
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past) > 0
}

// CanRedo reports whether a redo step exists
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future) > 0
}

// Len returns the number of undo steps
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past)
}

// Clear drops both stacks
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.past = nil
	h.future = nil
}
