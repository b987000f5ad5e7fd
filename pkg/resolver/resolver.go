// Package resolver computes, for a requested set of tables and an
// optional analytical context, the connecting join path and the join
// predicates that apply.
package resolver

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/querygraph-inc/querygraph-engine/pkg/apperrors"
	"github.com/querygraph-inc/querygraph-engine/pkg/graph"
	"github.com/querygraph-inc/querygraph-engine/pkg/models"
)

// SelectionPolicy controls how the resolver treats a table pair with
// multiple parallel edges when no context was requested.
type SelectionPolicy int

const (
	// SelectAllEdges returns every parallel edge for an undisambiguated
	// pair. This matches the reference behavior: the caller receives
	// multiple candidate predicates and must surface the ambiguity.
	SelectAllEdges SelectionPolicy = iota
	// SelectRequireContext fails the call with ErrAmbiguousRelationship
	// when a pair has more than one non-default edge and no context was
	// supplied.
	SelectRequireContext
)

// Resolver resolves join paths against an immutable relationship graph.
// It performs no I/O; concurrent calls are safe.
type Resolver struct {
	graph  *graph.Graph
	policy SelectionPolicy
	logger *zap.Logger
}

// New creates a resolver over the given graph.
func New(g *graph.Graph, policy SelectionPolicy, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{graph: g, policy: policy, logger: logger}
}

// Resolve expands the requested tables with any intermediates needed to
// connect them, selects the join edges that apply under the requested
// context, and attaches the full schema of every table involved.
//
// Unknown requested tables abort the call with no partial result.
// Disconnected pairs and context misses are not errors: they contribute
// no joins and the caller interprets the gap.
func (r *Resolver) Resolve(req models.ResolutionRequest) (*models.ResolutionResult, error) {
	requested := dedupe(req.Tables)
	if len(requested) == 0 {
		return nil, apperrors.ErrEmptyRequest
	}

	for _, table := range requested {
		if !r.graph.Catalog().HasTable(table) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownTable, table)
		}
	}

	allTables := r.expandTables(requested)

	joins, err := r.selectJoins(allTables, req.Context)
	if err != nil {
		return nil, err
	}

	schemas := make(map[string][]models.Column, len(allTables))
	for _, table := range allTables {
		t, err := r.graph.Catalog().GetTable(table)
		if err != nil {
			return nil, err
		}
		schemas[table] = t.Columns
	}

	r.logger.Debug("Resolved join request",
		zap.Strings("requested", requested),
		zap.Strings("all_tables", allTables),
		zap.Int("joins", len(joins)),
		zap.String("context", req.Context))

	return &models.ResolutionResult{
		RequestedTables: requested,
		AllTablesNeeded: allTables,
		Joins:           joins,
		Schemas:         schemas,
		Context:         req.Context,
	}, nil
}

// expandTables returns the requested tables plus any intermediates found
// on shortest connecting paths, requested tables first in their original
// order, then intermediates in discovery order. Disconnected pairs add
// nothing.
func (r *Resolver) expandTables(requested []string) []string {
	all := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, table := range requested {
		all = append(all, table)
		seen[table] = true
	}

	for i := 0; i < len(requested); i++ {
		for j := i + 1; j < len(requested); j++ {
			if r.graph.HasEdge(requested[i], requested[j]) {
				continue
			}
			path, ok := r.graph.ShortestPath(requested[i], requested[j])
			if !ok {
				r.logger.Debug("No connecting path",
					zap.String("from", requested[i]),
					zap.String("to", requested[j]))
				continue
			}
			for _, table := range path {
				if !seen[table] {
					seen[table] = true
					all = append(all, table)
				}
			}
		}
	}

	return all
}

// selectJoins applies the context selection policy to every unordered
// pair drawn from allTables, intermediate pairs included, and renders a
// SelectedJoin per chosen edge in discovery order.
func (r *Resolver) selectJoins(allTables []string, context string) ([]models.SelectedJoin, error) {
	joins := make([]models.SelectedJoin, 0)

	for i := 0; i < len(allTables); i++ {
		for j := i + 1; j < len(allTables); j++ {
			edges := r.graph.EdgesBetween(allTables[i], allTables[j])
			if len(edges) == 0 {
				continue
			}

			selected, err := r.selectEdges(edges, context)
			if err != nil {
				return nil, fmt.Errorf("between %q and %q: %w", allTables[i], allTables[j], err)
			}

			for _, edge := range selected {
				joins = append(joins, models.SelectedJoin{
					FromTable:     edge.FromTable,
					ToTable:       edge.ToTable,
					JoinCondition: edge.JoinCondition(),
					JoinType:      edge.JoinType,
					Context:       edge.Context,
					Description:   edge.Description,
				})
			}
		}
	}

	return joins, nil
}

// selectEdges picks which of a pair's parallel edges apply, evaluated
// once per pair over the full edge set between that pair:
//
//  1. With a context, context-specific edges whose label contains it
//     (case-insensitive) win outright.
//  2. With a context but no match, the literal default edges apply; if
//     none exist either, nothing is selected.
//  3. With no context, every edge is selected - unless the policy
//     requires disambiguation and more than one context-specific edge
//     exists.
func (r *Resolver) selectEdges(edges []*models.RelationshipEdge, context string) ([]*models.RelationshipEdge, error) {
	if context == "" {
		if r.policy == SelectRequireContext && countContextSpecific(edges) > 1 {
			return nil, fmt.Errorf("%w: %d context-specific edges and no context supplied",
				apperrors.ErrAmbiguousRelationship, countContextSpecific(edges))
		}
		return edges, nil
	}

	contextLower := strings.ToLower(context)
	var matches []*models.RelationshipEdge
	for _, edge := range edges {
		if edge.IsDefault() {
			continue
		}
		if strings.Contains(strings.ToLower(edge.Context), contextLower) {
			matches = append(matches, edge)
		}
	}
	if len(matches) > 0 {
		return matches, nil
	}

	var defaults []*models.RelationshipEdge
	for _, edge := range edges {
		if edge.IsDefault() {
			defaults = append(defaults, edge)
		}
	}
	return defaults, nil
}

// countContextSpecific counts edges whose context is not the default.
func countContextSpecific(edges []*models.RelationshipEdge) int {
	n := 0
	for _, edge := range edges {
		if !edge.IsDefault() {
			n++
		}
	}
	return n
}

// dedupe removes duplicate table names, preserving first occurrence order.
func dedupe(tables []string) []string {
	seen := make(map[string]bool, len(tables))
	out := make([]string, 0, len(tables))
	for _, table := range tables {
		if table == "" || seen[table] {
			continue
		}
		seen[table] = true
		out = append(out, table)
	}
	return out
}
