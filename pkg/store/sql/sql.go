// Package sql implements an article store on relational databases via GORM.
// It supports both SQLite (single-node, default) and PostgreSQL (shared)
// backends via the same codebase.
package sql

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quillhq/quill/pkg/models"
	"github.com/quillhq/quill/pkg/store"
)

// DatabaseType defines the supported relational backends.
type DatabaseType string

const (
	// DatabaseTypeSQLite uses SQLite (single-node, default).
	DatabaseTypeSQLite DatabaseType = "sqlite"

	// DatabaseTypePostgres uses PostgreSQL.
	DatabaseTypePostgres DatabaseType = "postgres"
)

// SQLiteConfig contains SQLite-specific configuration.
type SQLiteConfig struct {
	// Path is the path to the SQLite database file.
	Path string
}

// PostgresConfig contains PostgreSQL-specific configuration.
type PostgresConfig struct {
	Host         string
	Port         int
	Database     string
	User         string
	Password     string
	SSLMode      string // disable, require, verify-ca, verify-full
	MaxOpenConns int
	MaxIdleConns int
}

// DSN returns the PostgreSQL connection string.
func (c *PostgresConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		c.Host, c.Port, c.User, c.Password, c.Database)
	if c.SSLMode != "" {
		dsn += fmt.Sprintf(" sslmode=%s", c.SSLMode)
	}
	return dsn
}

// Config contains database configuration.
type Config struct {
	Type     DatabaseType
	SQLite   SQLiteConfig
	Postgres PostgresConfig
}

// ApplyDefaults fills in missing configuration with default values.
func (c *Config) ApplyDefaults() {
	if c.Type == "" {
		c.Type = DatabaseTypeSQLite
	}

	if c.Type == DatabaseTypePostgres {
		if c.Postgres.Port == 0 {
			c.Postgres.Port = 5432
		}
		if c.Postgres.SSLMode == "" {
			c.Postgres.SSLMode = "disable"
		}
		if c.Postgres.MaxOpenConns == 0 {
			c.Postgres.MaxOpenConns = 25
		}
		if c.Postgres.MaxIdleConns == 0 {
			c.Postgres.MaxIdleConns = 5
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Type {
	case DatabaseTypeSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case DatabaseTypePostgres:
		if c.Postgres.Host == "" {
			return fmt.Errorf("postgres host is required")
		}
		if c.Postgres.Database == "" {
			return fmt.Errorf("postgres database is required")
		}
		if c.Postgres.User == "" {
			return fmt.Errorf("postgres user is required")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Type)
	}
	return nil
}

// Store implements the article store contract using GORM.
type Store struct {
	db     *gorm.DB
	config *Config

	mu     sync.Mutex
	closed bool
}

// New opens a relational store based on the configuration.
func New(config *Config) (*Store, error) {
	if config == nil {
		config = &Config{}
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	var dialector gorm.Dialector
	switch config.Type {
	case DatabaseTypeSQLite:
		if err := os.MkdirAll(filepath.Dir(config.SQLite.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		// WAL for concurrent readers, busy_timeout to ride out writer locks.
		dsn := config.SQLite.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		dialector = sqlite.Open(dsn)

	case DatabaseTypePostgres:
		dialector = postgres.Open(config.Postgres.DSN())

	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.Type)
	}

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to database: %v", store.ErrConnection, err)
	}

	if config.Type == DatabaseTypePostgres {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying database: %w", err)
		}
		sqlDB.SetMaxOpenConns(config.Postgres.MaxOpenConns)
		sqlDB.SetMaxIdleConns(config.Postgres.MaxIdleConns)
	}

	return &Store{db: db, config: config}, nil
}

// DB returns the underlying GORM database connection. Useful for advanced
// queries or testing.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) checkClosed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	return nil
}

// EnsureCollection migrates the article schema into a table named after the
// collection. Re-running the migration is a no-op.
func (s *Store) EnsureCollection(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.checkClosed(); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Table(name).AutoMigrate(&models.Article{}); err != nil {
		return fmt.Errorf("%w: failed to migrate collection %q: %v", store.ErrBackend, name, err)
	}
	return nil
}

// Insert creates the article row under a freshly minted UUID.
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

	if err := s.db.WithContext(ctx).Table(collection).Create(article).Error; err != nil {
		return "", fmt.Errorf("%w: failed to insert article: %v", store.ErrBackend, err)
	}
	return article.ID, nil
}

// Find queries the collection table, applying filter clauses server-side
// where SQL can express them.
func (s *Store) Find(ctx context.Context, collection string, filter store.Filter) ([]*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkClosed(); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Table(collection)
	if filter.Author != "" {
		q = q.Where("author = ?", filter.Author)
	}

	rows := make([]*models.Article, 0)
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to query collection %q: %v", store.ErrBackend, collection, err)
	}

	// Tags are stored as a JSON column, so tag filtering happens here rather
	// than in SQL to stay portable between sqlite and postgres.
	if filter.Tag == "" {
		return rows, nil
	}
	results := make([]*models.Article, 0, len(rows))
	for _, a := range rows {
		if filter.Matches(a) {
			results = append(results, a)
		}
	}
	return results, nil
}

// FindByID fetches a single row, converting gorm.ErrRecordNotFound to
// store.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, collection string, id string) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkClosed(); err != nil {
		return nil, err
	}

	var article models.Article
	err := s.db.WithContext(ctx).Table(collection).Where("id = ?", id).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get article %s: %v", store.ErrBackend, id, err)
	}
	return &article, nil
}

// DeleteByID deletes the row and reports whether one was affected.
func (s *Store) DeleteByID(ctx context.Context, collection string, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := s.checkClosed(); err != nil {
		return false, err
	}

	result := s.db.WithContext(ctx).Table(collection).Where("id = ?", id).Delete(&models.Article{})
	if result.Error != nil {
		return false, fmt.Errorf("%w: failed to delete article %s: %v", store.ErrBackend, id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}
	s.closed = true

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
