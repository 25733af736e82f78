package assistant

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaetanosm/lifetrack/internal/logging"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestProxy_ForwardsBodyAndKey(t *testing.T) {
	var gotKey string
	var gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"ok"}`))
	}))
	defer upstream.Close()

	p := NewProxy(upstream.URL, "secret-key", time.Second, discardLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/assistant",
		strings.NewReader(`{"prompt":"hi"}`))
	w := httptest.NewRecorder()
	p.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret-key", gotKey)
	assert.JSONEq(t, `{"prompt":"hi"}`, gotBody)
	assert.JSONEq(t, `{"reply":"ok"}`, w.Body.String())
}

func TestProxy_RelaysUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	p := NewProxy(upstream.URL, "k", time.Second, discardLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/assistant", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	p.ServeHTTP(w, r)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestProxy_UnconfiguredAnswers503(t *testing.T) {
	p := NewProxy("", "", time.Second, discardLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/assistant", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	p.ServeHTTP(w, r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProxy_RejectsNonPostAndBadJSON(t *testing.T) {
	p := NewProxy("http://127.0.0.1:1", "k", time.Second, discardLogger())

	r := httptest.NewRequest(http.MethodGet, "/api/assistant", nil)
	w := httptest.NewRecorder()
	p.ServeHTTP(w, r)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/api/assistant", strings.NewReader("not json"))
	w = httptest.NewRecorder()
	p.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
