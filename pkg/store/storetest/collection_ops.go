package storetest

import (
	"testing"

	"github.com/quillhq/quill/pkg/store"
)

// runCollectionTests covers EnsureCollection and Close semantics.
func runCollectionTests(t *testing.T, factory StoreFactory) {
	t.Run("EnsureCollectionIdempotent", func(t *testing.T) {
		s := factory(t)
		ctx := t.Context()

		if err := s.EnsureCollection(ctx, testCollection); err != nil {
			t.Fatalf("first EnsureCollection() failed: %v", err)
		}
		if err := s.EnsureCollection(ctx, testCollection); err != nil {
			t.Fatalf("second EnsureCollection() failed: %v", err)
		}
	})

	t.Run("CollectionsAreIsolated", func(t *testing.T) {
		s := newTestStore(t, factory)
		ctx := t.Context()

		if err := s.EnsureCollection(ctx, "drafts"); err != nil {
			t.Fatalf("EnsureCollection(drafts) failed: %v", err)
		}

		insertArticle(t, s, "ada", "published piece")

		drafts, err := s.Find(ctx, "drafts", store.Filter{})
		if err != nil {
			t.Fatalf("Find(drafts) failed: %v", err)
		}
		if len(drafts) != 0 {
			t.Fatalf("expected empty drafts collection, got %d articles", len(drafts))
		}
	})
}
