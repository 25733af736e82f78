package services

import (
	"context"
	"sort"
	"sync"

	"github.com/gaetanosm/lifetrack/internal/client/cache"
	"github.com/gaetanosm/lifetrack/internal/common"
	"github.com/gaetanosm/lifetrack/internal/models"
)

// fakeRemote is an in-memory remote.Store. Setting offline makes every call
// fail with ErrStorageUnavailable, mimicking an unreachable document service.
type fakeRemote struct {
	mu      sync.Mutex
	records map[string]models.UserRecord
	offline bool
	puts    int
	putHook func(id string) error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{records: map[string]models.UserRecord{}}
}

func (f *fakeRemote) Get(ctx context.Context, id string) (*models.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.offline {
		return nil, common.ErrStorageUnavailable
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &rec, nil
}

func (f *fakeRemote) GetAll(ctx context.Context) (map[string]models.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.offline {
		return nil, common.ErrStorageUnavailable
	}
	out := make(map[string]models.UserRecord, len(f.records))
	for k, v := range f.records {
		out[k] = v
	}
	return out, nil
}

func (f *fakeRemote) Put(ctx context.Context, id string, rec models.UserRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.offline {
		return common.ErrStorageUnavailable
	}
	if f.putHook != nil {
		if err := f.putHook(id); err != nil {
			return err
		}
	}
	f.puts++
	f.records[id] = rec
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.offline {
		return common.ErrStorageUnavailable
	}
	if _, ok := f.records[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeRemote) setOffline(offline bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offline = offline
}

// fakeCache is an in-memory cache.Repository and MetadataRepository.
type fakeCache struct {
	mu      sync.Mutex
	records map[string]models.UserRecord
	meta    map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{records: map[string]models.UserRecord{}, meta: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, id string) (*models.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &rec, nil
}

func (f *fakeCache) Put(ctx context.Context, id string, rec models.UserRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[id] = rec
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	return nil
}

func (f *fakeCache) All(ctx context.Context) ([]cache.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := make([]cache.Entry, 0, len(f.records))
	for id, rec := range f.records {
		entries = append(entries, cache.Entry{ID: id, Record: rec})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

type fakeMeta struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeMeta() *fakeMeta { return &fakeMeta{data: map[string][]byte{}} }

func (f *fakeMeta) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeMeta) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeMeta) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeMeta) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = map[string][]byte{}
	return nil
}
