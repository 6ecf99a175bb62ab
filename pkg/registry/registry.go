// Package registry provides named, late-bound storage slots.
//
// A Registry decouples the code that opens a store from the code that uses
// it: handlers resolve the slot by name on every call, so rebinding a slot
// (during assembly, or when a test installs a double) atomically redirects
// all subsequent operations without touching the consumers.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quillhq/quill/pkg/store"
)

// DefaultCell is the slot name the article service resolves.
const DefaultCell = "articles"

// ErrUnbound is returned when resolving a slot that has never been bound.
// Callers test with errors.Is; the wrapped message carries the slot name.
var ErrUnbound = errors.New("registry: cell not bound")

// Registry manages named store slots. It is safe for concurrent use.
//
// Example usage:
//
//	reg := registry.New()
//	reg.Bind(registry.DefaultCell, memoryStore)
//
//	s, _ := reg.Resolve(registry.DefaultCell)
type Registry struct {
	mu    sync.RWMutex
	cells map[string]store.Store
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		cells: make(map[string]store.Store),
	}
}

// Bind assigns a store to the named slot, replacing any previous binding.
// The replacement is atomic: every Resolve that starts after Bind returns
// sees the new store, and no caller ever observes a half-updated slot.
func (r *Registry) Bind(name string, s store.Store) error {
	if s == nil {
		return fmt.Errorf("cannot bind nil store to cell %q", name)
	}
	if name == "" {
		return fmt.Errorf("cannot bind store to empty cell name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cells[name] = s
	return nil
}

// Resolve retrieves the store bound to the named slot.
// Returns ErrUnbound if nothing has been bound yet.
//
// Consumers must resolve on every operation rather than caching the result;
// a cached handle would defeat rebinding.
func (r *Registry) Resolve(name string) (store.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.cells[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnbound, name)
	}
	return s, nil
}

// Unbind removes the named slot. Returns the previously bound store, or nil
// if the slot was not bound.
func (r *Registry) Unbind(name string) store.Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.cells[name]
	delete(r.cells, name)
	return s
}

// Names returns all bound slot names. The returned slice is a copy and safe
// to modify.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.cells))
	for name := range r.cells {
		names = append(names, name)
	}
	return names
}

// Count returns the number of bound slots.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cells)
}

// IsBound checks whether the named slot has a binding.
func (r *Registry) IsBound(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.cells[name]
	return exists
}
