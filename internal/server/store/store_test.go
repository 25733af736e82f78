package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaetanosm/lifetrack/internal/common"
)

func TestFileStore_MissingFileIsEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := OpenFileStore(path)
	require.NoError(t, err)

	all, err := s.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileStore_PutGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := OpenFileStore(path)
	require.NoError(t, err)
	ctx := context.Background()

	doc := json.RawMessage(`{"displayName":"ALICE"}`)
	require.NoError(t, s.Put(ctx, "1", doc))

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.JSONEq(t, string(doc), string(got))

	require.NoError(t, s.Delete(ctx, "1"))
	_, err = s.Get(ctx, "1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = s.Delete(ctx, "1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	ctx := context.Background()

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "1", json.RawMessage(`{"a":1}`)))
	require.NoError(t, s.Put(ctx, "2", json.RawMessage(`{"b":2}`)))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)

	all, err := reopened.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := reopened.Get(ctx, "2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(got))
}

func TestFileStore_PutReplacesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := OpenFileStore(path)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "1", json.RawMessage(`{"v":"old","extra":true}`)))
	require.NoError(t, s.Put(ctx, "1", json.RawMessage(`{"v":"new"}`)))

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":"new"}`, string(got))
}

func TestFileStore_GetReturnsCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := OpenFileStore(path)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "1", json.RawMessage(`{"v":1}`)))

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	got[0] = 'X'

	again, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(again))
}

func TestOpenFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := OpenFileStore(path)
	assert.Error(t, err)
}
