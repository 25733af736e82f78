// Package store implements the whole-collection document store behind the
// HTTP API: a key->document map persisted to a single JSON file.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gaetanosm/lifetrack/internal/common"
)

// DocumentStore is the persistence contract of the records endpoint. All
// operations are idempotent whole-document reads and writes; Put replaces
// any existing document for the id.
type DocumentStore interface {
	Get(ctx context.Context, id string) (json.RawMessage, error)
	GetAll(ctx context.Context) (map[string]json.RawMessage, error)
	Put(ctx context.Context, id string, doc json.RawMessage) error
	Delete(ctx context.Context, id string) error
}

// FileStore keeps the collection in memory and rewrites the backing JSON
// file on every mutation. Writes are last-full-document-wins; there is no
// finer transactional guarantee, matching the original data.json contract.
type FileStore struct {
	mu   sync.RWMutex
	path string
	data map[string]json.RawMessage
}

// OpenFileStore loads the collection from path. A missing file means an
// empty collection; it is created on the first write.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, data: make(map[string]json.RawMessage)}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	}
	return s, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := make(json.RawMessage, len(doc))
	copy(out, doc)
	return out, nil
}

func (s *FileStore) GetAll(ctx context.Context) (map[string]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]json.RawMessage, len(s.data))
	for id, doc := range s.data {
		c := make(json.RawMessage, len(doc))
		copy(c, doc)
		out[id] = c
	}
	return out, nil
}

func (s *FileStore) Put(ctx context.Context, id string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(json.RawMessage, len(doc))
	copy(stored, doc)
	prev, hadPrev := s.data[id]
	s.data[id] = stored

	if err := s.persist(); err != nil {
		// Roll the map back so memory and disk stay consistent.
		if hadPrev {
			s.data[id] = prev
		} else {
			delete(s.data, id)
		}
		return err
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.data[id]
	if !ok {
		return common.ErrNotFound
	}
	delete(s.data, id)

	if err := s.persist(); err != nil {
		s.data[id] = prev
		return err
	}
	return nil
}

// persist rewrites the whole collection. Callers must hold the write lock.
func (s *FileStore) persist() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
