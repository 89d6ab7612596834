package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/tnylea/failwhale/pkg/domain/interfaces"
	"github.com/tnylea/failwhale/pkg/domain/model"
	"github.com/tnylea/failwhale/pkg/domain/types"
)

// SourceHandler exposes source list management over the control API
type SourceHandler struct {
	sourceUC interfaces.SourceUseCase
}

// NewSourceHandler creates a new SourceHandler
func NewSourceHandler(sourceUC interfaces.SourceUseCase) *SourceHandler {
	return &SourceHandler{sourceUC: sourceUC}
}

type sourceRequest struct {
	URL string `json:"url"`
}

type sourceListResponse struct {
	Sources []model.Source `json:"sources"`
}

// List returns all monitored sources
func (h *SourceHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sources, err := h.sourceUC.List(ctx)
	if err != nil {
		ctxlog.From(ctx).Error("Failed to list sources", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	if sources == nil {
		sources = []model.Source{}
	}

	writeJSON(w, http.StatusOK, &sourceListResponse{Sources: sources})
}

// Add registers a new source
func (h *SourceHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var req sourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		writeError(w, goerr.New("url is required"), http.StatusBadRequest)
		return
	}

	src, err := h.sourceUC.Add(ctx, req.URL)
	switch {
	case errors.Is(err, types.ErrInvalidRepoURL):
		writeError(w, err, http.StatusBadRequest)
		return
	case errors.Is(err, types.ErrDuplicateSource):
		writeError(w, err, http.StatusConflict)
		return
	case err != nil:
		logger.Error("Failed to add source", "url", req.URL, "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, src)
}

// Remove deletes a source identified by the url query parameter
func (h *SourceHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, goerr.New("url query parameter is required"), http.StatusBadRequest)
		return
	}

	err := h.sourceUC.Remove(ctx, url)
	switch {
	case errors.Is(err, types.ErrSourceNotFound):
		writeError(w, err, http.StatusNotFound)
		return
	case err != nil:
		ctxlog.From(ctx).Error("Failed to remove source", "url", url, "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(context.Background()).Error("Failed to encode response", "error", err)
	}
}
