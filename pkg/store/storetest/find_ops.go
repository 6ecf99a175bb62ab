package storetest

import (
	"testing"

	"github.com/quillhq/quill/pkg/store"
)

// runFindTests covers Find semantics: empty results, filters, and result
// independence.
func runFindTests(t *testing.T, factory StoreFactory) {
	t.Run("EmptyCollectionReturnsEmptySlice", func(t *testing.T) {
		s := newTestStore(t, factory)

		results, err := s.Find(t.Context(), testCollection, store.Filter{})
		if err != nil {
			t.Fatalf("Find() on empty collection failed: %v", err)
		}
		if results == nil {
			t.Fatal("Find() returned nil slice, want empty slice")
		}
		if len(results) != 0 {
			t.Fatalf("Find() on empty collection returned %d articles", len(results))
		}
	})

	t.Run("FindReturnsAllArticles", func(t *testing.T) {
		s := newTestStore(t, factory)

		want := map[string]bool{}
		for _, author := range []string{"ada", "grace", "barbara"} {
			a := insertArticle(t, s, author, "content by "+author)
			want[a.ID] = true
		}

		results, err := s.Find(t.Context(), testCollection, store.Filter{})
		if err != nil {
			t.Fatalf("Find() failed: %v", err)
		}
		if len(results) != len(want) {
			t.Fatalf("Find() returned %d articles, want %d", len(results), len(want))
		}
		for _, a := range results {
			if !want[a.ID] {
				t.Errorf("Find() returned unexpected article %q", a.ID)
			}
		}
	})

	t.Run("FilterByAuthor", func(t *testing.T) {
		s := newTestStore(t, factory)

		insertArticle(t, s, "ada", "first")
		insertArticle(t, s, "ada", "second")
		insertArticle(t, s, "grace", "third")

		results, err := s.Find(t.Context(), testCollection, store.Filter{Author: "ada"})
		if err != nil {
			t.Fatalf("Find(author=ada) failed: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("Find(author=ada) returned %d articles, want 2", len(results))
		}
		for _, a := range results {
			if a.Author != "ada" {
				t.Errorf("filtered result has author %q", a.Author)
			}
		}
	})

	t.Run("FilterByTag", func(t *testing.T) {
		s := newTestStore(t, factory)

		insertArticle(t, s, "ada", "tagged", "go", "storage")
		insertArticle(t, s, "grace", "untagged")

		results, err := s.Find(t.Context(), testCollection, store.Filter{Tag: "storage"})
		if err != nil {
			t.Fatalf("Find(tag=storage) failed: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("Find(tag=storage) returned %d articles, want 1", len(results))
		}
	})

	t.Run("EachCallReturnsFreshSlice", func(t *testing.T) {
		s := newTestStore(t, factory)
		ctx := t.Context()

		insertArticle(t, s, "ada", "stable content")

		first, err := s.Find(ctx, testCollection, store.Filter{})
		if err != nil {
			t.Fatalf("first Find() failed: %v", err)
		}

		// Mutating one result set must not leak into the next call.
		first[0].Author = "mutated"
		first[0].Tags = append(first[0].Tags, "mutated")

		second, err := s.Find(ctx, testCollection, store.Filter{})
		if err != nil {
			t.Fatalf("second Find() failed: %v", err)
		}
		if second[0].Author != "ada" {
			t.Fatalf("mutation of a previous result leaked: author = %q", second[0].Author)
		}
	})
}
