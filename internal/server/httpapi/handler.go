package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gaetanosm/lifetrack/internal/common"
	"github.com/gaetanosm/lifetrack/internal/logging"
	"github.com/gaetanosm/lifetrack/internal/server/store"
)

// RecordsHandler serves the whole-collection document API:
//
//	GET    /api/records?id=X  one record (null data when absent)
//	GET    /api/records       the whole collection
//	POST   /api/records       upsert {userId, data}
//	PUT    /api/records       same as POST
//	DELETE /api/records       delete {userId}
type RecordsHandler struct {
	store  store.DocumentStore
	logger logging.Logger
}

func NewRecordsHandler(s store.DocumentStore, logger logging.Logger) *RecordsHandler {
	return &RecordsHandler{store: s, logger: logger}
}

// Register attaches the handler to mux.
func (h *RecordsHandler) Register(mux *http.ServeMux) {
	mux.Handle("/api/records", h)
}

func (h *RecordsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost, http.MethodPut:
		h.handlePut(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *RecordsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.URL.Query().Get("id")
	if id == "" {
		all, err := h.store.GetAll(ctx)
		if err != nil {
			h.logger.Error(ctx, "collection read failed", "error", err)
			writeError(w, http.StatusInternalServerError, "read failed")
			return
		}
		writeData(w, all)
		return
	}

	doc, err := h.store.Get(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		writeData(w, nil)
		return
	}
	if err != nil {
		h.logger.Error(ctx, "record read failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "read failed")
		return
	}
	writeData(w, json.RawMessage(doc))
}

type mutationRequest struct {
	UserID string          `json:"userId"`
	Data   json.RawMessage `json:"data"`
}

func (h *RecordsHandler) handlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req mutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" || len(req.Data) == 0 || string(req.Data) == "null" {
		writeError(w, http.StatusBadRequest, "userId and data are required")
		return
	}

	if err := h.store.Put(ctx, req.UserID, req.Data); err != nil {
		h.logger.Error(ctx, "record write failed", "id", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "write failed")
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "saved"})
}

func (h *RecordsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req mutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	err := h.store.Delete(ctx, req.UserID)
	if errors.Is(err, common.ErrNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		h.logger.Error(ctx, "record delete failed", "id", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "deleted"})
}
