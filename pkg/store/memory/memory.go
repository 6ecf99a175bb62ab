// Package memory implements an in-memory article store.
//
// It is the default backend for development and the reference double for
// tests: no configuration, no persistence, safe for concurrent use.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quillhq/quill/pkg/models"
	"github.com/quillhq/quill/pkg/store"
)

// Store keeps articles in per-collection maps guarded by a RWMutex.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]*models.Article
	closed      bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]*models.Article),
	}
}

// EnsureCollection creates the collection map if it doesn't exist.
func (s *Store) EnsureCollection(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}
	if _, exists := s.collections[name]; !exists {
		s.collections[name] = make(map[string]*models.Article)
	}
	return nil
}

// Insert stores a copy of the article under a freshly minted UUID.
func (s *Store) Insert(ctx context.Context, collection string, article *models.Article) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", store.ErrClosed
	}

	coll, exists := s.collections[collection]
	if !exists {
		coll = make(map[string]*models.Article)
		s.collections[collection] = coll
	}

	id := uuid.NewString()
	article.ID = id
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}

	coll[id] = article.Clone()
	return id, nil
}

// Find returns copies of all matching articles. Nothing matching yields an
// empty slice.
func (s *Store) Find(ctx context.Context, collection string, filter store.Filter) ([]*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrClosed
	}

	results := make([]*models.Article, 0)
	for _, article := range s.collections[collection] {
		if filter.Matches(article) {
			results = append(results, article.Clone())
		}
	}
	return results, nil
}

// FindByID returns a copy of the article, or store.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, collection string, id string) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrClosed
	}

	article, exists := s.collections[collection][id]
	if !exists {
		return nil, store.ErrNotFound
	}
	return article.Clone(), nil
}

// DeleteByID removes the article and reports whether it existed.
func (s *Store) DeleteByID(ctx context.Context, collection string, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, store.ErrClosed
	}

	coll, exists := s.collections[collection]
	if !exists {
		return false, nil
	}
	if _, exists := coll[id]; !exists {
		return false, nil
	}
	delete(coll, id)
	return true, nil
}

// Close marks the store closed. Subsequent calls return store.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}
	s.closed = true
	s.collections = nil
	return nil
}
