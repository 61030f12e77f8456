package autosave

import (
	"context"

	"github.com/jonathan/resume-ats/internal/db"
)

// BlobDB is the subset of *db.DB used by PostgresStore
type BlobDB interface {
	GetBlob(ctx context.Context, key string) (*db.Blob, error)
	PutBlob(ctx context.Context, key string, value []byte) error
	DeleteBlob(ctx context.Context, key string) (bool, error)
}

// PostgresStore is a Store in the PostgreSQL kv_blobs table
type PostgresStore struct {
	db BlobDB
}

// NewPostgresStore creates a store over database. The caller owns the
// connection and must have called EnsureSchema.
func NewPostgresStore(database BlobDB) *PostgresStore {
	return &PostgresStore{db: database}
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	blob, err := p.db.GetBlob(ctx, key)
	if err != nil {
		return nil, &StoreError{Op: "get", Key: key, Cause: err}
	}
	if blob == nil {
		return nil, ErrNotFound
	}
	return blob.Value, nil
}

func (p *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if err := p.db.PutBlob(ctx, key, value); err != nil {
		return &StoreError{Op: "set", Key: key, Cause: err}
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := p.db.DeleteBlob(ctx, key); err != nil {
		return &StoreError{Op: "delete", Key: key, Cause: err}
	}
	return nil
}
