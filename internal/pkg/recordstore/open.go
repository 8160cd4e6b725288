package recordstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nalaaircon/nala-backend/internal/pkg/database"
)

// Options selects and configures a backend.
type Options struct {
	Backend        string // "postgres", "sqlite" or "memory"
	PostgresDSN    string
	ConnectTimeout time.Duration
	SQLitePath     string
	// FallbackToLocal opens the SQLite file when PostgreSQL is unreachable.
	FallbackToLocal bool
}

// Open returns the configured backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return openSQLite(ctx, opts.SQLitePath)
	case "postgres", "":
		db, err := database.NewPostgreSQLDB(ctx, opts.PostgresDSN, opts.ConnectTimeout)
		if err != nil {
			if !opts.FallbackToLocal {
				return nil, fmt.Errorf("failed to connect to postgres: %w", err)
			}
			slog.Warn("Postgres unreachable, using local record file",
				"error", err,
				"path", opts.SQLitePath,
			)
			return openSQLite(ctx, opts.SQLitePath)
		}
		store, err := NewPostgresStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown record store backend %q", opts.Backend)
	}
}

func openSQLite(ctx context.Context, path string) (Store, error) {
	db, err := database.NewSQLiteDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite record file: %w", err)
	}
	store, err := NewSQLiteStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
