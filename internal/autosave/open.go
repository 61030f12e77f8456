package autosave

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-ats/internal/db"
)

// Backend names accepted by OpenStore
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// BackendOptions carries the connection settings of every backend. Only the
// fields of the selected backend are read.
type BackendOptions struct {
	SQLitePath  string        // empty means DefaultSQLitePath()
	RedisURL    string        // redis://host:port/db
	RedisTTL    time.Duration // zero keeps keys until overwritten
	DatabaseURL string        // PostgreSQL connection URL
}

// OpenStore opens the named backend. The returned close function releases its
// connections and is never nil.
func OpenStore(ctx context.Context, backend string, opts BackendOptions) (Store, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case BackendMemory, "":
		return NewMemoryStore(), noop, nil

	case BackendSQLite:
		path := opts.SQLitePath
		if path == "" {
			var err error
			if path, err = DefaultSQLitePath(); err != nil {
				return nil, noop, err
			}
		}
		store, err := OpenSQLiteStore(path)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil

	case BackendRedis:
		store, err := OpenRedisStore(ctx, opts.RedisURL, opts.RedisTTL)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil

	case BackendPostgres:
		database, err := db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, noop, err
		}
		return NewPostgresStore(database), func() error { database.Close(); return nil }, nil

	default:
		return nil, noop, fmt.Errorf("unknown autosave backend %q", backend)
	}
}
