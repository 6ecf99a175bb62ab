package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/quillhq/quill/pkg/store"
	"github.com/quillhq/quill/pkg/store/memory"
)

func TestResolveUnbound(t *testing.T) {
	reg := New()

	_, err := reg.Resolve(DefaultCell)
	if !errors.Is(err, ErrUnbound) {
		t.Fatalf("Resolve() on empty registry = %v, want ErrUnbound", err)
	}
}

func TestBindThenResolve(t *testing.T) {
	reg := New()
	s := memory.New()

	if err := reg.Bind(DefaultCell, s); err != nil {
		t.Fatalf("Bind() failed: %v", err)
	}

	got, err := reg.Resolve(DefaultCell)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if got != store.Store(s) {
		t.Fatal("Resolve() returned a different store than was bound")
	}
}

func TestBindReplacesUnconditionally(t *testing.T) {
	reg := New()
	first := memory.New()
	second := memory.New()

	if err := reg.Bind(DefaultCell, first); err != nil {
		t.Fatalf("first Bind() failed: %v", err)
	}
	if err := reg.Bind(DefaultCell, second); err != nil {
		t.Fatalf("rebind failed: %v", err)
	}

	got, err := reg.Resolve(DefaultCell)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if got != store.Store(second) {
		t.Fatal("Resolve() returned the old binding after rebind")
	}
}

func TestBindRejectsNilAndEmptyName(t *testing.T) {
	reg := New()

	if err := reg.Bind(DefaultCell, nil); err == nil {
		t.Error("Bind(nil) succeeded, want error")
	}
	if err := reg.Bind("", memory.New()); err == nil {
		t.Error("Bind with empty name succeeded, want error")
	}
}

func TestUnbind(t *testing.T) {
	reg := New()
	s := memory.New()

	_ = reg.Bind(DefaultCell, s)

	removed := reg.Unbind(DefaultCell)
	if removed != store.Store(s) {
		t.Fatal("Unbind() did not return the bound store")
	}

	if _, err := reg.Resolve(DefaultCell); !errors.Is(err, ErrUnbound) {
		t.Fatalf("Resolve() after Unbind = %v, want ErrUnbound", err)
	}

	if removed := reg.Unbind(DefaultCell); removed != nil {
		t.Fatal("Unbind() on unbound slot returned a store")
	}
}

func TestNamesAndCount(t *testing.T) {
	reg := New()

	_ = reg.Bind("articles", memory.New())
	_ = reg.Bind("drafts", memory.New())

	if reg.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", reg.Count())
	}

	names := reg.Names()
	if len(names) != 2 {
		t.Fatalf("Names() returned %d names, want 2", len(names))
	}

	if !reg.IsBound("drafts") {
		t.Error("IsBound(drafts) = false, want true")
	}
	if reg.IsBound("missing") {
		t.Error("IsBound(missing) = true, want false")
	}
}

func TestConcurrentBindAndResolve(t *testing.T) {
	reg := New()
	_ = reg.Bind(DefaultCell, memory.New())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = reg.Bind(DefaultCell, memory.New())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s, err := reg.Resolve(DefaultCell)
				if err != nil {
					t.Errorf("Resolve() during rebinding = %v", err)
					return
				}
				if s == nil {
					t.Error("Resolve() returned nil store")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestInstallRestoresPreviousBinding(t *testing.T) {
	reg := New()
	original := memory.New()
	_ = reg.Bind(DefaultCell, original)

	t.Run("substituted", func(t *testing.T) {
		double := memory.New()
		Install(t, reg, DefaultCell, double)

		got, err := reg.Resolve(DefaultCell)
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if got != store.Store(double) {
			t.Fatal("Resolve() did not return the installed double")
		}
	})

	// Cleanup of the subtest has run; the original binding must be back.
	got, err := reg.Resolve(DefaultCell)
	if err != nil {
		t.Fatalf("Resolve() after restore failed: %v", err)
	}
	if got != store.Store(original) {
		t.Fatal("restore did not reinstate the original binding")
	}
}

func TestSwapRestoresUnboundState(t *testing.T) {
	reg := New()

	restore := Swap(reg, DefaultCell, memory.New())
	if !reg.IsBound(DefaultCell) {
		t.Fatal("Swap() did not bind the substitute")
	}

	restore()
	if _, err := reg.Resolve(DefaultCell); !errors.Is(err, ErrUnbound) {
		t.Fatalf("Resolve() after restore = %v, want ErrUnbound", err)
	}
}
