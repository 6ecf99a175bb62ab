// Package badger implements an article store backed by BadgerDB v4.
//
// Articles are stored as JSON values under prefixed keys (see encoding.go),
// which gives a persistent embedded backend with no external service.
package badger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/quillhq/quill/pkg/models"
	"github.com/quillhq/quill/pkg/store"
)

// Store is a BadgerDB-backed article store.
type Store struct {
	db *badgerdb.DB

	mu     sync.Mutex
	closed bool
}

// Open opens (or creates) a Badger database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := badgerdb.DefaultOptions(path).WithLogger(nil)
	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open badger db at %s: %v", store.ErrConnection, path, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) checkClosed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	return nil
}

// EnsureCollection writes the collection marker key if it doesn't exist.
func (s *Store) EnsureCollection(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.checkClosed(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(keyCollection(name))
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return txn.Set(keyCollection(name), []byte{})
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: failed to ensure collection %q: %v", store.ErrBackend, name, err)
	}
	return nil
}

// Insert stores the article as JSON under a freshly minted UUID key.
func (s *Store) Insert(ctx context.Context, collection string, article *models.Article) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.checkClosed(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	article.ID = id
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}

	data, err := encodeArticle(article)
	if err != nil {
		return "", fmt.Errorf("%w: %v", store.ErrBackend, err)
	}

	err = s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(keyArticle(collection, id), data)
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to insert article: %v", store.ErrBackend, err)
	}

	return id, nil
}

// Find range-scans the collection prefix and returns matching articles.
func (s *Store) Find(ctx context.Context, collection string, filter store.Filter) ([]*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkClosed(); err != nil {
		return nil, err
	}

	results := make([]*models.Article, 0)

	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		prefix := keyArticlePrefix(collection)
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				article, err := decodeArticle(val)
				if err != nil {
					return err
				}
				if filter.Matches(article) {
					results = append(results, article)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan collection %q: %v", store.ErrBackend, collection, err)
	}

	return results, nil
}

// FindByID fetches a single article key, mapping ErrKeyNotFound to
// store.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, collection string, id string) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkClosed(); err != nil {
		return nil, err
	}

	var article *models.Article

	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(keyArticle(collection, id))
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			article, err = decodeArticle(val)
			return err
		})
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get article %s: %v", store.ErrBackend, id, err)
	}

	return article, nil
}

// DeleteByID removes the article key and reports whether it existed.
func (s *Store) DeleteByID(ctx context.Context, collection string, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := s.checkClosed(); err != nil {
		return false, err
	}

	existed := false

	err := s.db.Update(func(txn *badgerdb.Txn) error {
		key := keyArticle(collection, id)

		_, err := txn.Get(key)
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		existed = true
		return txn.Delete(key)
	})
	if err != nil {
		return false, fmt.Errorf("%w: failed to delete article %s: %v", store.ErrBackend, id, err)
	}

	return existed, nil
}

// Close closes the underlying Badger database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}
	s.closed = true
	return s.db.Close()
}
