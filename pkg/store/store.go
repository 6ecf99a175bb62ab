// Package store defines the storage contract article handlers depend on.
//
// Handlers and services never talk to a backend type directly: they resolve
// a Store from the registry at call time. Any backend that satisfies this
// interface (and the conformance suite in storetest) can be bound into the
// registry, including test doubles.
package store

import (
	"context"

	"github.com/quillhq/quill/pkg/models"
)

// Filter narrows a Find call. Zero value matches everything.
type Filter struct {
	// Author matches articles with exactly this author when non-empty.
	Author string
	// Tag matches articles carrying this tag when non-empty.
	Tag string
}

// Matches reports whether the article satisfies the filter.
func (f Filter) Matches(a *models.Article) bool {
	if f.Author != "" && a.Author != f.Author {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, t := range a.Tags {
			if t == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Store is the capability contract for article persistence.
//
// Implementations must be safe for concurrent use. All methods return
// ErrClosed after Close.
type Store interface {
	// EnsureCollection makes sure the named collection exists and is ready
	// for use. Calling it when the collection already exists is a no-op.
	EnsureCollection(ctx context.Context, name string) error

	// Insert stores the article and returns its newly minted UUID. The
	// article's ID field is set to the same value; no other caller-supplied
	// field is modified.
	Insert(ctx context.Context, collection string, article *models.Article) (string, error)

	// Find returns the articles matching the filter. A query matching
	// nothing returns an empty slice, not an error. Every call yields a
	// fresh slice; callers may mutate the result freely.
	Find(ctx context.Context, collection string, filter Filter) ([]*models.Article, error)

	// FindByID returns the article with the given ID, or ErrNotFound.
	FindByID(ctx context.Context, collection string, id string) (*models.Article, error)

	// DeleteByID removes the article with the given ID. It reports whether
	// a record was actually removed; deleting an absent ID returns
	// (false, nil), not an error.
	DeleteByID(ctx context.Context, collection string, id string) (bool, error)

	// Close releases backend resources. Further calls return ErrClosed.
	Close() error
}
