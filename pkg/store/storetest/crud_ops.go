package storetest

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/quillhq/quill/pkg/store"
)

// runCRUDTests covers Insert, FindByID, and DeleteByID semantics.
func runCRUDTests(t *testing.T, factory StoreFactory) {
	t.Run("InsertThenFindByID", func(t *testing.T) {
		s := newTestStore(t, factory)
		ctx := t.Context()

		inserted := insertArticle(t, s, "ada", "on analytical engines", "computing", "history")

		got, err := s.FindByID(ctx, testCollection, inserted.ID)
		if err != nil {
			t.Fatalf("FindByID(%q) failed: %v", inserted.ID, err)
		}
		if got.ID != inserted.ID {
			t.Errorf("ID = %q, want %q", got.ID, inserted.ID)
		}
		if got.Author != "ada" {
			t.Errorf("Author = %q, want %q", got.Author, "ada")
		}
		if got.Content != "on analytical engines" {
			t.Errorf("Content = %q, want %q", got.Content, "on analytical engines")
		}
		if len(got.Tags) != 2 || got.Tags[0] != "computing" || got.Tags[1] != "history" {
			t.Errorf("Tags = %v, want [computing history]", got.Tags)
		}
		if got.CreatedAt.IsZero() {
			t.Error("CreatedAt not set on insert")
		}
	})

	t.Run("InsertMintsValidUUID", func(t *testing.T) {
		s := newTestStore(t, factory)

		inserted := insertArticle(t, s, "grace", "compilers")

		if _, err := uuid.Parse(inserted.ID); err != nil {
			t.Fatalf("Insert() minted non-UUID id %q: %v", inserted.ID, err)
		}
	})

	t.Run("InsertMintsUniqueIDs", func(t *testing.T) {
		s := newTestStore(t, factory)

		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			a := insertArticle(t, s, "author", "content")
			if seen[a.ID] {
				t.Fatalf("Insert() reused id %q", a.ID)
			}
			seen[a.ID] = true
		}
	})

	t.Run("FindByIDUnknownReturnsNotFound", func(t *testing.T) {
		s := newTestStore(t, factory)

		_, err := s.FindByID(t.Context(), testCollection, uuid.NewString())
		if !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("FindByID(unknown) = %v, want store.ErrNotFound", err)
		}
	})

	t.Run("DeleteByIDRemovesRecord", func(t *testing.T) {
		s := newTestStore(t, factory)
		ctx := t.Context()

		inserted := insertArticle(t, s, "ada", "ephemeral")

		deleted, err := s.DeleteByID(ctx, testCollection, inserted.ID)
		if err != nil {
			t.Fatalf("DeleteByID() failed: %v", err)
		}
		if !deleted {
			t.Fatal("DeleteByID() = false, want true for existing record")
		}

		if _, err := s.FindByID(ctx, testCollection, inserted.ID); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("FindByID(deleted) = %v, want store.ErrNotFound", err)
		}
	})

	t.Run("DeleteByIDAbsentReturnsFalse", func(t *testing.T) {
		s := newTestStore(t, factory)

		deleted, err := s.DeleteByID(t.Context(), testCollection, uuid.NewString())
		if err != nil {
			t.Fatalf("DeleteByID(absent) returned error: %v", err)
		}
		if deleted {
			t.Fatal("DeleteByID(absent) = true, want false")
		}
	})

	t.Run("DeleteByIDIsIdempotent", func(t *testing.T) {
		s := newTestStore(t, factory)
		ctx := t.Context()

		inserted := insertArticle(t, s, "ada", "delete me twice")

		first, err := s.DeleteByID(ctx, testCollection, inserted.ID)
		if err != nil || !first {
			t.Fatalf("first DeleteByID() = (%v, %v), want (true, nil)", first, err)
		}

		second, err := s.DeleteByID(ctx, testCollection, inserted.ID)
		if err != nil {
			t.Fatalf("second DeleteByID() returned error: %v", err)
		}
		if second {
			t.Fatal("second DeleteByID() = true, want false")
		}
	})

	t.Run("UseAfterCloseReturnsClosed", func(t *testing.T) {
		s := newTestStore(t, factory)

		if err := s.Close(); err != nil {
			t.Fatalf("Close() failed: %v", err)
		}

		if _, err := s.Find(t.Context(), testCollection, store.Filter{}); !errors.Is(err, store.ErrClosed) {
			t.Fatalf("Find() after Close = %v, want store.ErrClosed", err)
		}
	})
}
