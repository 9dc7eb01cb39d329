package kvstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/rapidblood/internal/config"
	"github.com/dmitrijs2005/rapidblood/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Store is a flat key/value namespace.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error

	// Update replaces the value at key with fn(current). current is nil
	// when the key is absent. An error from fn aborts without writing.
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error

	Close() error
}

// Open builds the backend selected by cfg.Store and prepares its schema.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return NewMemory(), nil

	case config.StoreSQLite, "":
		if err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
			return nil, err
		}
		db, err := sql.Open("sqlite", cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.DatabasePath, err)
		}
		// ":memory:" databases exist per connection.
		db.SetMaxOpenConns(1)
		return openSQL(ctx, db, SQLite)

	case config.StorePostgres:
		db, err := sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return openSQL(ctx, db, Postgres)

	case config.StoreS3:
		client, err := NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

func openSQL(ctx context.Context, db *sql.DB, d Dialect) (Store, error) {
	if err := RunMigrations(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s store: %w", d.Name, err)
	}
	return NewSQLStore(db, d), nil
}
