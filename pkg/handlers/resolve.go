package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/querygraph-inc/querygraph-engine/pkg/apperrors"
	"github.com/querygraph-inc/querygraph-engine/pkg/models"
	"github.com/querygraph-inc/querygraph-engine/pkg/resolver"
	sqlcheck "github.com/querygraph-inc/querygraph-engine/pkg/sql"
)

// ResolveRequest is the body of POST /api/resolve.
type ResolveRequest struct {
	Tables  []string `json:"tables"`
	Context *string  `json:"context"`
}

// ResolveHandler serves join resolution requests.
type ResolveHandler struct {
	resolver *resolver.Resolver
	logger   *zap.Logger
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(r *resolver.Resolver, logger *zap.Logger) *ResolveHandler {
	return &ResolveHandler{resolver: r, logger: logger}
}

// RegisterRoutes registers the resolve handler's routes on the given mux.
func (h *ResolveHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/resolve", h.Resolve)
}

// Resolve handles POST /api/resolve.
// Body: {"tables": ["Counterparty", "Trade"], "context": "country"|null}.
// Responds with the resolution result: tables needed, selected joins
// with rendered conditions, and per-table schemas.
func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	context := ""
	if req.Context != nil {
		context = *req.Context
	}

	if err := sqlcheck.ScreenResolutionInput(req.Tables, context); err != nil {
		h.logger.Warn("Rejected unsafe resolution input", zap.Error(err))
		if err := ErrorResponse(w, http.StatusBadRequest, "unsafe_input", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.resolver.Resolve(models.ResolutionRequest{Tables: req.Tables, Context: context})
	if err != nil {
		h.writeResolveError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeResolveError maps resolver errors to HTTP statuses.
func (h *ResolveHandler) writeResolveError(w http.ResponseWriter, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, apperrors.ErrUnknownTable):
		status, code = http.StatusNotFound, "unknown_table"
	case errors.Is(err, apperrors.ErrAmbiguousRelationship):
		status, code = http.StatusConflict, "ambiguous_relationship"
	case errors.Is(err, apperrors.ErrEmptyRequest):
		status, code = http.StatusBadRequest, "empty_request"
	default:
		h.logger.Error("Resolution failed", zap.Error(err))
		status, code = http.StatusInternalServerError, "resolve_failed"
	}

	if writeErr := ErrorResponse(w, status, code, err.Error()); writeErr != nil {
		h.logger.Error("Failed to write error response", zap.Error(writeErr))
	}
}
