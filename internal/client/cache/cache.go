// Package cache implements the local fallback tier: a durable key->record
// map scoped to a single client, consulted only when the remote store is
// unreachable or lacks the record, plus a small metadata table for the saved
// session.
package cache

import (
	"context"

	"github.com/gaetanosm/lifetrack/internal/models"
)

// Entry pairs a cached record with its key.
type Entry struct {
	ID     string
	Record models.UserRecord
}

// Repository is the record cache. Put fully replaces the prior value for a
// key, never a partial merge: both the resolver and the reconciler rely on
// that.
type Repository interface {
	Get(ctx context.Context, id string) (*models.UserRecord, error)
	Put(ctx context.Context, id string, rec models.UserRecord) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]Entry, error)
}

// MetadataRepository is a plain key/value side table. Get returns nil with
// no error for an absent key.
type MetadataRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
