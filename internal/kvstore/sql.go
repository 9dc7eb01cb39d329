package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rapidblood/internal/dbx"
	"github.com/dmitrijs2005/rapidblood/internal/migrations"
)

// Dialect carries the SQL text and migration settings for one database.
type Dialect struct {
	Name         string
	GooseDialect string
	MigrationDir string

	get    string
	set    string
	delete string
	keys   string
	clear  string
}

var SQLite = Dialect{
	Name:         "sqlite",
	GooseDialect: "sqlite3",
	MigrationDir: migrations.SQLiteDir,

	get: `SELECT value FROM records WHERE key = ?`,
	set: `
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`,
	delete: `DELETE FROM records WHERE key = ?`,
	keys:   `SELECT key FROM records ORDER BY key`,
	clear:  `DELETE FROM records`,
}

var Postgres = Dialect{
	Name:         "postgres",
	GooseDialect: "pgx",
	MigrationDir: migrations.PostgresDir,

	get: `SELECT value FROM records WHERE key = $1`,
	set: `
		INSERT INTO records (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`,
	delete: `DELETE FROM records WHERE key = $1`,
	keys:   `SELECT key FROM records ORDER BY key`,
	clear:  `DELETE FROM records`,
}

// SQLStore keeps records in the "records" table of a SQL database.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLStore(db *sql.DB, d Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: d}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.get(ctx, s.db, key)
}

func (s *SQLStore) get(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, s.dialect.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record[%s]: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	return s.set(ctx, s.db, key, value)
}

func (s *SQLStore) set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := db.ExecContext(ctx, s.dialect.set, key, value); err != nil {
		return fmt.Errorf("failed to set record[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.delete, key); err != nil {
		return fmt.Errorf("failed to delete record[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.keys)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan record key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate record keys: %w", err)
	}
	return keys, nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.clear); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

func (s *SQLStore) Update(ctx context.Context, key string, fn func([]byte) ([]byte, error)) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := s.get(ctx, tx, key)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		return s.set(ctx, tx, key, next)
	})
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
