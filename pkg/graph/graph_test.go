package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/querygraph-inc/querygraph-engine/pkg/apperrors"
	"github.com/querygraph-inc/querygraph-engine/pkg/catalog"
	"github.com/querygraph-inc/querygraph-engine/pkg/models"
)

func fixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]models.Table{
		{Name: "Counterparty", Columns: []models.Column{
			{Name: "Entity"},
			{Name: "Counterparty ID"},
			{Name: "Counterparty Country"},
			{Name: "Counterparty Sector"},
			{Name: "Internal Rating"},
		}},
		{Name: "Trade", Columns: []models.Column{
			{Name: "Entity"},
			{Name: "Reporting Counterparty ID"},
		}},
		{Name: "Concentration", Columns: []models.Column{
			{Name: "Entity"},
			{Name: "Concentration Value"},
		}},
		{Name: "Island", Columns: []models.Column{
			{Name: "ID"},
		}},
	})
	require.NoError(t, err)
	return cat
}

func fixtureDeclarations() []models.RelationshipDeclaration {
	return []models.RelationshipDeclaration{
		{
			Table1:   "Counterparty",
			Table2:   "Trade",
			JoinKey1: "Entity+Counterparty ID",
			JoinKey2: "Entity+Reporting Counterparty ID",
			JoinType: models.JoinTypeInner,
		},
		{
			Table1:   "Counterparty",
			Table2:   "Concentration",
			JoinKey1: "Entity+Counterparty Country",
			JoinKey2: "Entity+Concentration Value",
			JoinType: models.JoinTypeInner,
			Context:  "For country level data",
		},
		{
			Table1:   "Counterparty",
			Table2:   "Concentration",
			JoinKey1: "Entity+Counterparty Sector",
			JoinKey2: "Entity+Concentration Value",
			JoinType: models.JoinTypeInner,
			Context:  "For sector level data",
		},
		{
			Table1:   "Counterparty",
			Table2:   "Concentration",
			JoinKey1: "Entity+Internal Rating",
			JoinKey2: "Entity+Concentration Value",
			JoinType: models.JoinTypeInner,
			Context:  "For rating level data",
		},
	}
}

func fixtureGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := New(fixtureCatalog(t), fixtureDeclarations(), zap.NewNop())
	require.NoError(t, err)
	return g
}

func TestNew_BuildsAllEdges(t *testing.T) {
	g := fixtureGraph(t)

	edges := g.AllEdges()
	require.Len(t, edges, 4)

	// Declaration order is preserved.
	assert.Equal(t, "Trade", edges[0].ToTable)
	assert.Equal(t, "For country level data", edges[1].Context)
	assert.Equal(t, "For sector level data", edges[2].Context)
	assert.Equal(t, "For rating level data", edges[3].Context)

	for _, edge := range edges {
		assert.NotEqual(t, "", edge.ID.String())
	}
}

func TestNew_Defaults(t *testing.T) {
	cat := fixtureCatalog(t)
	g, err := New(cat, []models.RelationshipDeclaration{
		{Table1: "Counterparty", Table2: "Trade", JoinKey1: "Entity", JoinKey2: "Entity"},
	}, nil)
	require.NoError(t, err)

	edge := g.AllEdges()[0]
	assert.Equal(t, models.JoinTypeInner, edge.JoinType)
	assert.Equal(t, models.DefaultContext, edge.Context)
	assert.Equal(t, "Join Counterparty with Trade", edge.Description)
	assert.True(t, edge.IsDefault())
}

func TestNew_UnknownTable(t *testing.T) {
	cat := fixtureCatalog(t)
	_, err := New(cat, []models.RelationshipDeclaration{
		{Table1: "Counterparty", Table2: "Nonexistent", JoinKey1: "Entity", JoinKey2: "Entity"},
	}, zap.NewNop())
	require.ErrorIs(t, err, apperrors.ErrUnknownTable)
}

func TestNew_CompoundKeyLengthMismatch(t *testing.T) {
	cat := fixtureCatalog(t)
	_, err := New(cat, []models.RelationshipDeclaration{
		{Table1: "Counterparty", Table2: "Trade", JoinKey1: "Entity+Counterparty ID", JoinKey2: "Entity"},
	}, zap.NewNop())
	require.ErrorIs(t, err, apperrors.ErrInvalidRelationship)
}

func TestNew_EmptyJoinKey(t *testing.T) {
	cat := fixtureCatalog(t)
	_, err := New(cat, []models.RelationshipDeclaration{
		{Table1: "Counterparty", Table2: "Trade", JoinKey1: "", JoinKey2: ""},
	}, zap.NewNop())
	require.ErrorIs(t, err, apperrors.ErrInvalidRelationship)
}

func TestNew_InvalidJoinType(t *testing.T) {
	cat := fixtureCatalog(t)
	_, err := New(cat, []models.RelationshipDeclaration{
		{Table1: "Counterparty", Table2: "Trade", JoinKey1: "Entity", JoinKey2: "Entity", JoinType: "CROSS"},
	}, zap.NewNop())
	require.ErrorIs(t, err, apperrors.ErrInvalidJoinType)
}

func TestSplitCompoundKey_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, []string{"Entity", "Counterparty ID"}, splitCompoundKey("Entity + Counterparty ID"))
	assert.Equal(t, []string{"Entity"}, splitCompoundKey("Entity"))
	assert.Nil(t, splitCompoundKey("  "))
}

func TestEdgesBetween_BothDirections(t *testing.T) {
	g := fixtureGraph(t)

	// Declared direction.
	edges := g.EdgesBetween("Counterparty", "Trade")
	require.Len(t, edges, 1)
	assert.Equal(t, "Counterparty", edges[0].FromTable)

	// Reverse lookup finds the same declared edge, orientation intact.
	reversed := g.EdgesBetween("Trade", "Counterparty")
	require.Len(t, reversed, 1)
	assert.Equal(t, "Counterparty", reversed[0].FromTable)
	assert.Equal(t, "Trade", reversed[0].ToTable)
}

func TestEdgesBetween_ParallelEdgesInDeclarationOrder(t *testing.T) {
	g := fixtureGraph(t)

	edges := g.EdgesBetween("Counterparty", "Concentration")
	require.Len(t, edges, 3)
	assert.Equal(t, "For country level data", edges[0].Context)
	assert.Equal(t, "For sector level data", edges[1].Context)
	assert.Equal(t, "For rating level data", edges[2].Context)
}

func TestEdgesBetween_NoEdges(t *testing.T) {
	g := fixtureGraph(t)
	assert.Empty(t, g.EdgesBetween("Trade", "Concentration"))
	assert.Empty(t, g.EdgesBetween("Island", "Trade"))
}

func TestHasEdge(t *testing.T) {
	g := fixtureGraph(t)
	assert.True(t, g.HasEdge("Counterparty", "Trade"))
	assert.True(t, g.HasEdge("Trade", "Counterparty"))
	assert.False(t, g.HasEdge("Trade", "Concentration"))
}

func TestNeighbors(t *testing.T) {
	g := fixtureGraph(t)

	assert.Equal(t, []string{"Trade", "Concentration"}, g.Neighbors("Counterparty"))
	assert.Equal(t, []string{"Counterparty"}, g.Neighbors("Trade"))
	assert.Empty(t, g.Neighbors("Island"))
}

func TestShortestPath(t *testing.T) {
	g := fixtureGraph(t)

	path, ok := g.ShortestPath("Trade", "Concentration")
	require.True(t, ok)
	assert.Equal(t, []string{"Trade", "Counterparty", "Concentration"}, path)

	path, ok = g.ShortestPath("Counterparty", "Trade")
	require.True(t, ok)
	assert.Equal(t, []string{"Counterparty", "Trade"}, path)

	path, ok = g.ShortestPath("Trade", "Trade")
	require.True(t, ok)
	assert.Equal(t, []string{"Trade"}, path)
}

func TestShortestPath_Disconnected(t *testing.T) {
	g := fixtureGraph(t)

	_, ok := g.ShortestPath("Trade", "Island")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	g := fixtureGraph(t)

	stats := g.Stats()
	assert.Equal(t, 4, stats.TotalTables)
	assert.Equal(t, 4, stats.TotalRelationships)
	assert.Equal(t, []string{"Counterparty", "Trade", "Concentration", "Island"}, stats.Tables)
	assert.InDelta(t, 2.0, stats.AverageConnections, 0.001)
	// Island has no relationships, so the graph is disconnected.
	assert.False(t, stats.IsConnected)
}

func TestStats_Connected(t *testing.T) {
	cat, err := catalog.New([]models.Table{
		{Name: "A", Columns: []models.Column{{Name: "ID"}}},
		{Name: "B", Columns: []models.Column{{Name: "ID"}}},
	})
	require.NoError(t, err)

	g, err := New(cat, []models.RelationshipDeclaration{
		{Table1: "A", Table2: "B", JoinKey1: "ID", JoinKey2: "ID"},
	}, zap.NewNop())
	require.NoError(t, err)

	stats := g.Stats()
	assert.True(t, stats.IsConnected)
	assert.InDelta(t, 1.0, stats.AverageConnections, 0.001)
}

func TestJoinCondition_CompositeKey(t *testing.T) {
	g := fixtureGraph(t)

	edge := g.EdgesBetween("Counterparty", "Trade")[0]
	assert.Equal(t,
		"Counterparty.Entity = Trade.Entity AND Counterparty.Counterparty ID = Trade.Reporting Counterparty ID",
		edge.JoinCondition())
}
