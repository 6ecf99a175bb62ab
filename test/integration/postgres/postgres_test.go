//go:build integration

// Package postgres_test runs the article store conformance suite against a
// real PostgreSQL instance. By default a throwaway container is started via
// testcontainers; set QUILL_TEST_POSTGRES_HOST to point at an external
// instance instead.
package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/quillhq/quill/pkg/store"
	"github.com/quillhq/quill/pkg/store/sql"
	"github.com/quillhq/quill/pkg/store/storetest"
)

const (
	testDatabase = "quill_test"
	testUser     = "quill_test"
	testPassword = "quill_test"
)

// Shared connection details, filled in by TestMain. A single container is
// shared across all tests to avoid paying the startup cost per subtest.
var (
	pgHost string
	pgPort int
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	// External PostgreSQL configured via environment, skip the container.
	if host := os.Getenv("QUILL_TEST_POSTGRES_HOST"); host != "" {
		pgHost = host
		pgPort = 5432
		if p := os.Getenv("QUILL_TEST_POSTGRES_PORT"); p != "" {
			_, _ = fmt.Sscanf(p, "%d", &pgPort)
		}
		os.Exit(m.Run())
	}

	// Use a long deadline because Docker can be slow on first run when the
	// image needs to be pulled. PostgreSQL logs "database system is ready"
	// twice during startup (bootstrap, then for real), so wait for the
	// second occurrence.
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(testDatabase),
		tcpostgres.WithUsername(testUser),
		tcpostgres.WithPassword(testPassword),
		testcontainers.WithWaitStrategyAndDeadline(5*time.Minute,
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		_ = container.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container port: %v\n", err)
		os.Exit(1)
	}

	pgHost = host
	pgPort = port.Int()

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

// newPostgresStore opens a store against the shared database and resets the
// tables the suite touches, since the database outlives individual subtests.
func newPostgresStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sql.New(&sql.Config{
		Type: sql.DatabaseTypePostgres,
		Postgres: sql.PostgresConfig{
			Host:     pgHost,
			Port:     pgPort,
			Database: testDatabase,
			User:     testUser,
			Password: testPassword,
			SSLMode:  "disable",
		},
	})
	if err != nil {
		t.Fatalf("failed to open postgres store: %v", err)
	}

	if err := s.DB().Exec("DROP TABLE IF EXISTS articles, drafts").Error; err != nil {
		_ = s.Close()
		t.Fatalf("failed to reset test tables: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestPostgresStore_Conformance(t *testing.T) {
	storetest.RunConformanceSuite(t, newPostgresStore)
}
