// Package graph implements the relationship graph: a directed multigraph
// of catalog tables whose edges carry composite join keys and context
// labels. The graph is built once from relationship declarations and is
// immutable afterwards, so concurrent readers need no locking.
package graph

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/querygraph-inc/querygraph-engine/pkg/apperrors"
	"github.com/querygraph-inc/querygraph-engine/pkg/catalog"
	"github.com/querygraph-inc/querygraph-engine/pkg/models"
)

// Graph owns the relationship edges between catalog tables. Multiple
// parallel edges between the same ordered pair are allowed; they are
// distinguished by context and join key and kept in declaration order.
type Graph struct {
	catalog *catalog.Catalog
	// edges in declaration order
	edges []*models.RelationshipEdge
	// byPair indexes edges by their declared (from, to) direction
	byPair map[pairKey][]*models.RelationshipEdge
	// adjacency treats edges as undirected for connectivity; built once
	// at construction and cached for path search
	adjacency map[string][]string
}

type pairKey struct {
	from string
	to   string
}

// New builds a relationship graph from declarations, validating each
// against the catalog. Both compound keys are parsed into ordered column
// lists; their lengths must match. No reverse edges are synthesized -
// direction matters for storage, and lookups query both directions.
// A failed build publishes nothing.
func New(cat *catalog.Catalog, declarations []models.RelationshipDeclaration, logger *zap.Logger) (*Graph, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Graph{
		catalog:   cat,
		edges:     make([]*models.RelationshipEdge, 0, len(declarations)),
		byPair:    make(map[pairKey][]*models.RelationshipEdge),
		adjacency: make(map[string][]string),
	}

	// Every catalog table is a node, related or not. The graph may be
	// disconnected.
	for _, name := range cat.AllTables() {
		g.adjacency[name] = nil
	}

	for i, decl := range declarations {
		edge, err := g.buildEdge(decl)
		if err != nil {
			return nil, fmt.Errorf("relationship %d (%s -> %s): %w", i, decl.Table1, decl.Table2, err)
		}

		key := pairKey{from: edge.FromTable, to: edge.ToTable}
		g.edges = append(g.edges, edge)
		g.byPair[key] = append(g.byPair[key], edge)
		g.addNeighbor(edge.FromTable, edge.ToTable)
		g.addNeighbor(edge.ToTable, edge.FromTable)
	}

	logger.Info("Relationship graph built",
		zap.Int("tables", cat.Len()),
		zap.Int("relationships", len(g.edges)))

	return g, nil
}

// buildEdge validates a single declaration and converts it to an edge.
func (g *Graph) buildEdge(decl models.RelationshipDeclaration) (*models.RelationshipEdge, error) {
	if !g.catalog.HasTable(decl.Table1) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownTable, decl.Table1)
	}
	if !g.catalog.HasTable(decl.Table2) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownTable, decl.Table2)
	}

	sourceColumns := splitCompoundKey(decl.JoinKey1)
	targetColumns := splitCompoundKey(decl.JoinKey2)
	if len(sourceColumns) == 0 {
		return nil, fmt.Errorf("%w: empty join key for %q", apperrors.ErrInvalidRelationship, decl.Table1)
	}
	if len(sourceColumns) != len(targetColumns) {
		return nil, fmt.Errorf("%w: compound key length mismatch (%d vs %d)",
			apperrors.ErrInvalidRelationship, len(sourceColumns), len(targetColumns))
	}

	joinType := decl.JoinType
	if joinType == "" {
		joinType = models.JoinTypeInner
	}
	if !models.IsValidJoinType(joinType) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidJoinType, joinType)
	}

	context := decl.Context
	if context == "" {
		context = models.DefaultContext
	}

	description := decl.Description
	if description == "" {
		description = fmt.Sprintf("Join %s with %s", decl.Table1, decl.Table2)
	}

	return &models.RelationshipEdge{
		ID:            uuid.New(),
		FromTable:     decl.Table1,
		ToTable:       decl.Table2,
		SourceColumns: sourceColumns,
		TargetColumns: targetColumns,
		JoinType:      joinType,
		Context:       context,
		Description:   description,
	}, nil
}

// addNeighbor records b as a neighbor of a, once.
func (g *Graph) addNeighbor(a, b string) {
	for _, existing := range g.adjacency[a] {
		if existing == b {
			return
		}
	}
	g.adjacency[a] = append(g.adjacency[a], b)
}

// splitCompoundKey parses a delimiter-joined compound key string such as
// "Entity+Counterparty ID" into trimmed column names.
func splitCompoundKey(key string) []string {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	parts := strings.Split(key, models.CompoundKeyDelimiter)
	columns := make([]string, len(parts))
	for i, part := range parts {
		columns[i] = strings.TrimSpace(part)
	}
	return columns
}

// EdgesBetween returns the declared edges connecting a and b in either
// direction: a->b edges first, then b->a, each in declaration order.
// Each edge keeps its declared orientation, which the resolver uses to
// render columns on the correct side.
func (g *Graph) EdgesBetween(a, b string) []*models.RelationshipEdge {
	var edges []*models.RelationshipEdge
	edges = append(edges, g.byPair[pairKey{from: a, to: b}]...)
	if a != b {
		edges = append(edges, g.byPair[pairKey{from: b, to: a}]...)
	}
	return edges
}

// HasEdge reports whether any edge connects a and b in either direction.
func (g *Graph) HasEdge(a, b string) bool {
	if len(g.byPair[pairKey{from: a, to: b}]) > 0 {
		return true
	}
	return len(g.byPair[pairKey{from: b, to: a}]) > 0
}

// Neighbors returns the tables reachable from the given table by one
// edge in either direction, in first-connection order.
func (g *Graph) Neighbors(table string) []string {
	neighbors := g.adjacency[table]
	out := make([]string, len(neighbors))
	copy(out, neighbors)
	return out
}

// AllEdges returns every edge in declaration order.
func (g *Graph) AllEdges() []*models.RelationshipEdge {
	edges := make([]*models.RelationshipEdge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// Catalog returns the schema catalog this graph was built against.
func (g *Graph) Catalog() *catalog.Catalog {
	return g.catalog
}

// ShortestPath finds a shortest undirected path from start to end using
// breadth-first search over the cached adjacency. All edges are
// unweighted for connectivity purposes. Returns the path including both
// endpoints, or false when the tables are disconnected.
func (g *Graph) ShortestPath(start, end string) ([]string, bool) {
	if start == end {
		return []string{start}, true
	}

	visited := map[string]bool{start: true}
	parent := make(map[string]string)
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighbor := range g.adjacency[current] {
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			parent[neighbor] = current
			if neighbor == end {
				return reconstructPath(parent, start, end), true
			}
			queue = append(queue, neighbor)
		}
	}

	return nil, false
}

// reconstructPath walks parent pointers back from end to start.
func reconstructPath(parent map[string]string, start, end string) []string {
	var reversed []string
	for node := end; node != start; node = parent[node] {
		reversed = append(reversed, node)
	}
	reversed = append(reversed, start)

	path := make([]string, len(reversed))
	for i, node := range reversed {
		path[len(reversed)-1-i] = node
	}
	return path
}

// Stats summarizes the graph: table and relationship counts, the table
// list, average connections per table, and weak connectivity.
func (g *Graph) Stats() models.GraphStats {
	tables := g.catalog.AllTables()

	stats := models.GraphStats{
		TotalTables:        len(tables),
		TotalRelationships: len(g.edges),
		Tables:             tables,
	}

	if len(tables) > 0 {
		// Each edge contributes to the degree of both endpoints.
		stats.AverageConnections = float64(2*len(g.edges)) / float64(len(tables))
		stats.IsConnected = g.isConnected(tables)
	}

	return stats
}

// isConnected reports whether every table is reachable from the first
// one when edges are treated as undirected.
func (g *Graph) isConnected(tables []string) bool {
	if len(tables) <= 1 {
		return true
	}

	visited := map[string]bool{tables[0]: true}
	queue := []string{tables[0]}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, neighbor := range g.adjacency[current] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return len(visited) == len(tables)
}
