// Package remote defines the client-side contract of the remote document
// store and its HTTP implementation. The remote tier is the single source of
// truth once reachable; all four operations are idempotent and replace whole
// records, never partial fields.
package remote

import (
	"context"

	"github.com/gaetanosm/lifetrack/internal/models"
)

// Store is the remote document store consumed by the identity core.
//
// Contract:
//   - Get returns common.ErrNotFound when the id is absent and
//     common.ErrStorageUnavailable when the transport fails.
//   - GetAll returns the whole collection keyed by id.
//   - Put upserts, replacing the stored record entirely.
//   - Delete returns common.ErrNotFound for absent ids.
type Store interface {
	Get(ctx context.Context, id string) (*models.UserRecord, error)
	GetAll(ctx context.Context) (map[string]models.UserRecord, error)
	Put(ctx context.Context, id string, rec models.UserRecord) error
	Delete(ctx context.Context, id string) error
}
