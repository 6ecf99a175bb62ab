// Package storetest provides a conformance suite for article store
// implementations. Every backend runs the same suite so the storage
// contract stays uniform across memory, badger, mongo, and sql.
package storetest

import (
	"testing"

	"github.com/quillhq/quill/pkg/models"
	"github.com/quillhq/quill/pkg/store"
)

// StoreFactory creates a fresh Store instance for each test.
// The factory receives *testing.T so it can use t.TempDir() for stores
// that need filesystem paths and t.Cleanup() for teardown.
type StoreFactory func(t *testing.T) store.Store

// RunConformanceSuite runs the full conformance suite against the provided
// store factory. Each subtest gets a fresh store instance to ensure
// isolation.
func RunConformanceSuite(t *testing.T, factory StoreFactory) {
	t.Helper()

	t.Run("Collections", func(t *testing.T) {
		runCollectionTests(t, factory)
	})

	t.Run("CRUD", func(t *testing.T) {
		runCRUDTests(t, factory)
	})

	t.Run("Find", func(t *testing.T) {
		runFindTests(t, factory)
	})
}

// testCollection is the collection name used throughout the suite.
const testCollection = "articles"

// newTestStore builds a store via the factory and ensures the test
// collection exists.
func newTestStore(t *testing.T, factory StoreFactory) store.Store {
	t.Helper()

	s := factory(t)
	if err := s.EnsureCollection(t.Context(), testCollection); err != nil {
		t.Fatalf("EnsureCollection(%q) failed: %v", testCollection, err)
	}
	return s
}

// insertArticle is a helper that inserts an article and fails the test on
// error.
func insertArticle(t *testing.T, s store.Store, author, content string, tags ...string) *models.Article {
	t.Helper()

	article := &models.Article{
		Author:  author,
		Content: content,
		Tags:    tags,
	}
	id, err := s.Insert(t.Context(), testCollection, article)
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if id == "" {
		t.Fatal("Insert() returned empty id")
	}
	if article.ID != id {
		t.Fatalf("Insert() id mismatch: returned %q, article has %q", id, article.ID)
	}
	return article
}
