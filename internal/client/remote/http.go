package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gaetanosm/lifetrack/internal/common"
	"github.com/gaetanosm/lifetrack/internal/models"
)

const defaultTimeout = 12 * time.Second

// envelope is the wire format shared with the server:
// {success, data?, message?, error?}.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// putRequest is the body of POST/PUT upserts.
type putRequest struct {
	UserID string             `json:"userId"`
	Data   *models.UserRecord `json:"data,omitempty"`
}

// HTTPStore talks to the document service over its JSON endpoint.
type HTTPStore struct {
	endpointURL string
	client      *http.Client
}

// NewHTTPStore builds a store for the given endpoint, e.g.
// "http://127.0.0.1:8080/api/records".
func NewHTTPStore(endpointURL string) *HTTPStore {
	return &HTTPStore{
		endpointURL: endpointURL,
		client:      &http.Client{Timeout: defaultTimeout},
	}
}

func (s *HTTPStore) Get(ctx context.Context, id string) (*models.UserRecord, error) {
	env, err := s.do(ctx, http.MethodGet, s.endpointURL+"?id="+url.QueryEscape(id), nil)
	if err != nil {
		return nil, err
	}
	// The service reports success with null data for an absent id.
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, common.ErrNotFound
	}
	var rec models.UserRecord
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", id, err)
	}
	return &rec, nil
}

func (s *HTTPStore) GetAll(ctx context.Context) (map[string]models.UserRecord, error) {
	env, err := s.do(ctx, http.MethodGet, s.endpointURL, nil)
	if err != nil {
		return nil, err
	}
	all := make(map[string]models.UserRecord)
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return all, nil
	}
	if err := json.Unmarshal(env.Data, &all); err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}
	return all, nil
}

func (s *HTTPStore) Put(ctx context.Context, id string, rec models.UserRecord) error {
	body, err := json.Marshal(putRequest{UserID: id, Data: &rec})
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", id, err)
	}
	_, err = s.do(ctx, http.MethodPost, s.endpointURL, body)
	return err
}

func (s *HTTPStore) Delete(ctx context.Context, id string) error {
	body, err := json.Marshal(putRequest{UserID: id})
	if err != nil {
		return err
	}
	_, err = s.do(ctx, http.MethodDelete, s.endpointURL, body)
	return err
}

// do performs one request and maps transport failures to
// common.ErrStorageUnavailable so callers can fall back to the local tier.
func (s *HTTPStore) do(ctx context.Context, method, requestURL string, body []byte) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, common.ErrNotFound
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", common.ErrStorageUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", common.ErrStorageUnavailable, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("document service: %s", env.Error)
	}
	return &env, nil
}
