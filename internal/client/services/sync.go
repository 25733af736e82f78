// Package services contains the identity core: two-tier resolution, sync
// reconciliation, and base-account provisioning. This file implements the
// reconciler that pushes locally-cached records to the remote store.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gaetanosm/lifetrack/internal/client/cache"
	"github.com/gaetanosm/lifetrack/internal/client/remote"
	"github.com/gaetanosm/lifetrack/internal/common"
	"github.com/gaetanosm/lifetrack/internal/logging"
	"github.com/gaetanosm/lifetrack/internal/models"
)

// SyncResult summarizes one reconciliation pass.
type SyncResult struct {
	Synced int
	Failed int
}

// SyncService reconciles the local cache against the remote store.
//
// Contract:
//   - ReconcileAll: push every cached record; on success remove it from the
//     cache, on failure leave it for a later pass. Partial success is
//     expected and non-fatal.
//   - PushOne: same for a single record, leaving siblings untouched.
//
// Remote writes are upserts, so re-pushing an already-synced record is
// harmless. A failed write keeps its only copy in the cache: no record is
// ever lost.
type SyncService interface {
	ReconcileAll(ctx context.Context) (SyncResult, error)
	PushOne(ctx context.Context, id string) error
}

type syncService struct {
	remote remote.Store
	cache  cache.Repository
	logger logging.Logger
}

func NewSyncService(remote remote.Store, cache cache.Repository, logger logging.Logger) SyncService {
	return &syncService{remote: remote, cache: cache, logger: logger}
}

// ReconcileAll takes a snapshot of the cache at entry and only mutates
// entries it personally synced, so a concurrently triggered pass is safe and
// at worst does duplicate work.
func (s *syncService) ReconcileAll(ctx context.Context) (SyncResult, error) {
	snapshot, err := s.cache.All(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("reading cache snapshot: %w", err)
	}

	var result SyncResult
	for _, entry := range snapshot {
		rec := models.Normalize(entry.ID, entry.Record, entry.Record.OwnerID)
		if err := s.remote.Put(ctx, entry.ID, rec); err != nil {
			result.Failed++
			s.logger.Warn(ctx, "record sync failed, keeping in cache", "id", entry.ID, "error", err)
			continue
		}
		if err := s.cache.Delete(ctx, entry.ID); err != nil {
			// The record now exists in both tiers; the next pass re-pushes
			// it, which the upsert absorbs.
			result.Failed++
			s.logger.Warn(ctx, "failed to clear synced record from cache", "id", entry.ID, "error", err)
			continue
		}
		result.Synced++
	}

	if result.Synced > 0 {
		s.logger.Info(ctx, "reconciliation finished", "synced", result.Synced, "failed", result.Failed)
	}
	return result, nil
}

func (s *syncService) PushOne(ctx context.Context, id string) error {
	entry, err := s.cache.Get(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		// Nothing pending for this id; an earlier pass already synced it.
		return nil
	}
	if err != nil {
		return err
	}

	rec := models.Normalize(id, *entry, entry.OwnerID)
	if err := s.remote.Put(ctx, id, rec); err != nil {
		return fmt.Errorf("pushing record %s: %w", id, err)
	}
	return s.cache.Delete(ctx, id)
}
