// Package mongo implements an article store backed by MongoDB.
//
// Articles are stored with their UUID as the document _id, matching the
// string IDs every other backend mints.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/quillhq/quill/pkg/models"
	"github.com/quillhq/quill/pkg/store"
)

const defaultDatabase = "quill"

// Config contains MongoDB connection configuration.
type Config struct {
	// URI is the MongoDB connection string (mongodb:// or mongodb+srv://).
	URI string

	// Database is the database holding article collections.
	// Defaults to "quill".
	Database string

	// ConnectTimeout bounds the initial dial and ping. Defaults to 10s.
	ConnectTimeout time.Duration
}

// Store is a MongoDB-backed article store.
type Store struct {
	client *mongodriver.Client
	db     *mongodriver.Database

	mu     sync.Mutex
	closed bool
}

// Open dials MongoDB and verifies the connection with a ping.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("%w: mongo uri is required", store.ErrConnection)
	}
	if cfg.Database == "" {
		cfg.Database = defaultDatabase
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongodriver.Connect(dialCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to mongodb: %v", store.ErrConnection, err)
	}

	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: mongodb ping failed: %v", store.ErrConnection, err)
	}

	return &Store{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

func (s *Store) checkClosed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	return nil
}

// EnsureCollection creates the collection, tolerating NamespaceExists.
func (s *Store) EnsureCollection(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.checkClosed(); err != nil {
		return err
	}

	err := s.db.CreateCollection(ctx, name)
	if err != nil {
		// Code 48: NamespaceExists. The collection is already there.
		var cmdErr mongodriver.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == 48 {
			return nil
		}
		return fmt.Errorf("%w: failed to create collection %q: %v", store.ErrBackend, name, err)
	}
	return nil
}

// Insert stores the article document under a freshly minted UUID _id.
func (s *Store) Insert(ctx context.Context, collection string, article *models.Article) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.checkClosed(); err != nil {
		return "", err
	}

	article.ID = uuid.NewString()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}

	if _, err := s.db.Collection(collection).InsertOne(ctx, article); err != nil {
		return "", fmt.Errorf("%w: failed to insert article: %v", store.ErrBackend, err)
	}
	return article.ID, nil
}

// Find queries the collection with a server-side filter.
func (s *Store) Find(ctx context.Context, collection string, filter store.Filter) ([]*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkClosed(); err != nil {
		return nil, err
	}

	query := bson.M{}
	if filter.Author != "" {
		query["author"] = filter.Author
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}

	cursor, err := s.db.Collection(collection).Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query collection %q: %v", store.ErrBackend, collection, err)
	}
	defer cursor.Close(ctx)

	results := make([]*models.Article, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("%w: failed to decode articles: %v", store.ErrBackend, err)
	}
	return results, nil
}

// FindByID fetches a single document, mapping ErrNoDocuments to
// store.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, collection string, id string) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkClosed(); err != nil {
		return nil, err
	}

	var article models.Article
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&article)
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get article %s: %v", store.ErrBackend, id, err)
	}
	return &article, nil
}

// DeleteByID removes the document and reports whether one was deleted.
func (s *Store) DeleteByID(ctx context.Context, collection string, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := s.checkClosed(); err != nil {
		return false, err
	}

	result, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("%w: failed to delete article %s: %v", store.ErrBackend, id, err)
	}
	return result.DeletedCount > 0, nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}
	s.closed = true

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
