// Package db provides PostgreSQL access for the key/value blob table that backs
// server-side autosave.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the blob table if it does not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, createBlobsTable)
	if err != nil {
		return fmt.Errorf("failed to create %s table: %w", blobsTable, err)
	}
	return nil
}

// PutBlob stores value under key, replacing any previous value.
func (db *DB) PutBlob(ctx context.Context, key string, value []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO kv_blobs (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to put blob %s: %w", key, err)
	}
	return nil
}

// GetBlob retrieves the blob stored under key. It returns nil, nil when the key is absent.
func (db *DB) GetBlob(ctx context.Context, key string) (*Blob, error) {
	var blob Blob
	err := db.pool.QueryRow(ctx,
		`SELECT key, value, updated_at FROM kv_blobs WHERE key = $1`,
		key,
	).Scan(&blob.Key, &blob.Value, &blob.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blob %s: %w", key, err)
	}
	return &blob, nil
}

// DeleteBlob removes the blob stored under key, reporting whether it existed.
func (db *DB) DeleteBlob(ctx context.Context, key string) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM kv_blobs WHERE key = $1`, key)
	if err != nil {
		return false, fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListBlobKeys returns the keys starting with prefix, in key order.
func (db *DB) ListBlobKeys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT key FROM kv_blobs WHERE starts_with(key, $1) ORDER BY key`,
		prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list blob keys: %w", err)
	}

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan blob keys: %w", err)
	}
	return keys, nil
}
