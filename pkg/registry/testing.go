package registry

import (
	"testing"

	"github.com/quillhq/quill/pkg/store"
)

// Install binds a substitute store to the named slot for the duration of a
// test, restoring the previous binding (or unbound state) on cleanup.
//
// Restoration is exact: if the slot was unbound before Install, it is
// unbound again afterwards, not left with a stale double.
func Install(t *testing.T, r *Registry, name string, substitute store.Store) {
	t.Helper()

	restore := Swap(r, name, substitute)
	t.Cleanup(restore)
}

// Swap binds a substitute store to the named slot and returns a function
// that restores the previous state. Callers outside tests use this directly;
// tests should prefer Install.
func Swap(r *Registry, name string, substitute store.Store) (restore func()) {
	r.mu.Lock()
	previous, wasBound := r.cells[name]
	r.cells[name] = substitute
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if wasBound {
			r.cells[name] = previous
		} else {
			delete(r.cells, name)
		}
	}
}
