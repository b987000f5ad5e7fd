package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/querygraph-inc/querygraph-engine/pkg/export"
	"github.com/querygraph-inc/querygraph-engine/pkg/models"
	"github.com/querygraph-inc/querygraph-engine/pkg/resolver"
)

func TestGraphHandler_Export(t *testing.T) {
	_, g := testResolver(t, resolver.SelectAllEdges)
	h := NewGraphHandler(g, export.New(g.Catalog(), g), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/graph/export", nil)
	w := httptest.NewRecorder()
	h.Export(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Success bool               `json:"success"`
		Data    models.GraphExport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Len(t, envelope.Data.Tables, 3)
	require.Len(t, envelope.Data.Edges, 3)
	assert.Equal(t, "Counterparty", envelope.Data.Edges[0].From)
	assert.Equal(t, "Trade", envelope.Data.Edges[0].To)
	assert.Equal(t, []string{"Entity", "Counterparty ID"}, envelope.Data.Edges[0].SourceColumns)
}

func TestGraphHandler_Stats(t *testing.T) {
	_, g := testResolver(t, resolver.SelectAllEdges)
	h := NewGraphHandler(g, export.New(g.Catalog(), g), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/graph/stats", nil)
	w := httptest.NewRecorder()
	h.Stats(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Success bool              `json:"success"`
		Data    models.GraphStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, 3, envelope.Data.TotalTables)
	assert.Equal(t, 3, envelope.Data.TotalRelationships)
	assert.True(t, envelope.Data.IsConnected)
	assert.InDelta(t, 2.0, envelope.Data.AverageConnections, 0.001)
}
