// Package assistant proxies chat requests to an upstream model endpoint so
// the API key never reaches the browser or the CLI.
package assistant

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gaetanosm/lifetrack/internal/logging"
)

const maxBodySize = 1 << 20 // 1 MiB

// Proxy forwards POST bodies verbatim to the configured endpoint and relays
// the upstream response. With no API key configured it answers 503.
type Proxy struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   logging.Logger
}

func NewProxy(endpoint, apiKey string, timeout time.Duration, logger logging.Logger) *Proxy {
	return &Proxy{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Register attaches the proxy to mux.
func (p *Proxy) Register(mux *http.ServeMux) {
	mux.Handle("/api/assistant", p)
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if p.apiKey == "" || p.endpoint == "" {
		writeError(w, http.StatusServiceUnavailable, "assistant is not configured")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body failed")
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "building upstream request failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error(ctx, "assistant upstream unreachable", "error", err)
		writeError(w, http.StatusBadGateway, "assistant upstream unreachable")
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		p.logger.Warn(ctx, "relaying assistant response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{Success: false, Error: msg})
}
