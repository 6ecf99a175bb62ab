package lifecycle

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/quillhq/quill/pkg/store"
	"github.com/quillhq/quill/pkg/store/badger"
	"github.com/quillhq/quill/pkg/store/memory"
	"github.com/quillhq/quill/pkg/store/mongo"
	"github.com/quillhq/quill/pkg/store/sql"
)

// openStore dispatches on the connection target scheme and opens the
// matching backend. Malformed or unknown targets fail with
// store.ErrConnection, the same class as an unreachable backend.
func openStore(ctx context.Context, target string) (store.Store, error) {
	switch {
	case target == "" || target == "memory" || target == "memory://":
		return memory.New(), nil

	case strings.HasPrefix(target, "badger://"):
		path := strings.TrimPrefix(target, "badger://")
		if path == "" {
			return nil, fmt.Errorf("%w: badger target requires a path", store.ErrConnection)
		}
		return badger.Open(ctx, path)

	case strings.HasPrefix(target, "sqlite://"):
		path := strings.TrimPrefix(target, "sqlite://")
		if path == "" {
			return nil, fmt.Errorf("%w: sqlite target requires a path", store.ErrConnection)
		}
		return sql.New(&sql.Config{
			Type:   sql.DatabaseTypeSQLite,
			SQLite: sql.SQLiteConfig{Path: path},
		})

	case strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://"):
		cfg, err := parsePostgresTarget(target)
		if err != nil {
			return nil, err
		}
		return sql.New(cfg)

	case strings.HasPrefix(target, "mongodb://") || strings.HasPrefix(target, "mongodb+srv://"):
		return mongo.Open(ctx, mongo.Config{
			URI:      target,
			Database: mongoDatabase(target),
		})

	default:
		return nil, fmt.Errorf("%w: unsupported connection target %q", store.ErrConnection, target)
	}
}

// backendName reports which backend a connection target selects. Safe for
// logs: never includes credentials or paths.
func backendName(target string) string {
	switch {
	case target == "" || target == "memory" || target == "memory://":
		return "memory"
	case strings.HasPrefix(target, "badger://"):
		return "badger"
	case strings.HasPrefix(target, "sqlite://"):
		return "sqlite"
	case strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(target, "mongodb://") || strings.HasPrefix(target, "mongodb+srv://"):
		return "mongo"
	default:
		return "unknown"
	}
}

// parsePostgresTarget converts a postgres:// URL into the sql backend config.
func parsePostgresTarget(target string) (*sql.Config, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed postgres target: %v", store.ErrConnection, err)
	}

	cfg := &sql.Config{Type: sql.DatabaseTypePostgres}
	cfg.Postgres.Host = u.Hostname()
	cfg.Postgres.Database = strings.TrimPrefix(u.Path, "/")

	if port := u.Port(); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed postgres port %q", store.ErrConnection, port)
		}
		cfg.Postgres.Port = p
	}
	if u.User != nil {
		cfg.Postgres.User = u.User.Username()
		cfg.Postgres.Password, _ = u.User.Password()
	}
	if sslmode := u.Query().Get("sslmode"); sslmode != "" {
		cfg.Postgres.SSLMode = sslmode
	}
	return cfg, nil
}

// mongoDatabase extracts the database name from a mongodb URI path, if any.
func mongoDatabase(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
