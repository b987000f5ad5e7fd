package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/querygraph-inc/querygraph-engine/pkg/export"
	"github.com/querygraph-inc/querygraph-engine/pkg/graph"
)

// GraphHandler serves read-only projections of the relationship graph.
type GraphHandler struct {
	graph    *graph.Graph
	exporter *export.Exporter
	logger   *zap.Logger
}

// NewGraphHandler creates a new graph handler.
func NewGraphHandler(g *graph.Graph, exporter *export.Exporter, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{graph: g, exporter: exporter, logger: logger}
}

// RegisterRoutes registers the graph handler's routes on the given mux.
func (h *GraphHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/graph/export", h.Export)
	mux.HandleFunc("GET /api/graph/stats", h.Stats)
}

// Export handles GET /api/graph/export.
// Returns every table and edge record for external visualization or
// storage; re-importing the payload reconstructs an equivalent graph.
func (h *GraphHandler) Export(w http.ResponseWriter, r *http.Request) {
	data := h.exporter.Export()
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: data}); err != nil {
		h.logger.Error("Failed to write export response", zap.Error(err))
	}
}

// Stats handles GET /api/graph/stats.
// Returns table/relationship counts, average connections, and whether
// the graph is connected.
func (h *GraphHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.graph.Stats()
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: stats}); err != nil {
		h.logger.Error("Failed to write stats response", zap.Error(err))
	}
}
