package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaetanosm/lifetrack/internal/common"
	"github.com/gaetanosm/lifetrack/internal/models"
)

// fakeService mimics the document service envelope over one collection map.
func fakeService(t *testing.T, records map[string]models.UserRecord) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			id := r.URL.Query().Get("id")
			if id == "" {
				_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": records})
				return
			}
			rec, ok := records[id]
			if !ok {
				_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": nil})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": rec})
		case http.MethodPost, http.MethodPut:
			var req struct {
				UserID string            `json:"userId"`
				Data   models.UserRecord `json:"data"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			records[req.UserID] = req.Data
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "saved"})
		case http.MethodDelete:
			var req struct {
				UserID string `json:"userId"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if _, ok := records[req.UserID]; !ok {
				w.WriteHeader(http.StatusNotFound)
				_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "not found"})
				return
			}
			delete(records, req.UserID)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
		}
	}))
}

func TestHTTPStore_GetPutRoundTrip(t *testing.T) {
	records := map[string]models.UserRecord{}
	srv := fakeService(t, records)
	defer srv.Close()

	store := NewHTTPStore(srv.URL)
	ctx := context.Background()

	rec := models.Normalize("123", models.UserRecord{DisplayName: "alice"}, "")
	require.NoError(t, store.Put(ctx, "123", rec))

	got, err := store.Get(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "ALICE", got.DisplayName)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestHTTPStore_GetMissingIsNotFound(t *testing.T) {
	srv := fakeService(t, map[string]models.UserRecord{})
	defer srv.Close()

	store := NewHTTPStore(srv.URL)
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestHTTPStore_DeleteMissingIsNotFound(t *testing.T) {
	srv := fakeService(t, map[string]models.UserRecord{})
	defer srv.Close()

	store := NewHTTPStore(srv.URL)
	err := store.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestHTTPStore_TransportFailureIsStorageUnavailable(t *testing.T) {
	srv := fakeService(t, map[string]models.UserRecord{})
	srv.Close() // connection refused from here on

	store := NewHTTPStore(srv.URL)

	_, err := store.Get(context.Background(), "1")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	err = store.Put(context.Background(), "1", models.UserRecord{})
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}

func TestHTTPStore_ServerErrorIsStorageUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL)
	_, err := store.Get(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrStorageUnavailable))
}
