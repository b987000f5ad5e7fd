// Package tools provides MCP tool implementations for querygraph-engine.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/querygraph-inc/querygraph-engine/pkg/apperrors"
	"github.com/querygraph-inc/querygraph-engine/pkg/export"
	"github.com/querygraph-inc/querygraph-engine/pkg/graph"
	"github.com/querygraph-inc/querygraph-engine/pkg/models"
	"github.com/querygraph-inc/querygraph-engine/pkg/resolver"
	sqlcheck "github.com/querygraph-inc/querygraph-engine/pkg/sql"
)

// GraphToolDeps contains dependencies for graph MCP tools.
type GraphToolDeps struct {
	Graph    *graph.Graph
	Resolver *resolver.Resolver
	Exporter *export.Exporter
	Logger   *zap.Logger
}

// RegisterGraphTools registers the read-only graph tools.
func RegisterGraphTools(s *server.MCPServer, deps *GraphToolDeps) {
	registerResolveJoinsTool(s, deps)
	registerGetGraphTool(s, deps)
	registerGetStatsTool(s, deps)
}

// registerResolveJoinsTool adds the resolve_joins tool.
func registerResolveJoinsTool(s *server.MCPServer, deps *GraphToolDeps) {
	tool := mcp.NewTool(
		"resolve_joins",
		mcp.WithDescription(
			"Resolve the join path connecting a set of tables. Returns every table needed "+
				"(including intermediates discovered by path search), the selected join edges with "+
				"rendered composite conditions, and the full column list of each table. "+
				"Pass an analytical context (e.g. 'country', 'sector', 'rating') to pick between "+
				"parallel relationships declared for different contexts. "+
				"Example: resolve_joins(tables=['Counterparty','Concentration'], context='country')",
		),
		mcp.WithArray(
			"tables",
			mcp.Required(),
			mcp.Description("Table names to connect. Must match catalog names exactly."),
		),
		mcp.WithString(
			"context",
			mcp.Description("Optional analytical context used to select between parallel relationships."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tables := getStringSlice(req, "tables")
		if len(tables) == 0 {
			return NewErrorResult("invalid_parameters", "parameter 'tables' must list at least one table"), nil
		}
		analyticalContext := getOptionalString(req, "context")

		if err := sqlcheck.ScreenResolutionInput(tables, analyticalContext); err != nil {
			return NewErrorResult("unsafe_input", err.Error()), nil
		}

		result, err := deps.Resolver.Resolve(models.ResolutionRequest{Tables: tables, Context: analyticalContext})
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUnknownTable):
				return NewErrorResult("unknown_table", err.Error()), nil
			case errors.Is(err, apperrors.ErrAmbiguousRelationship):
				return NewErrorResult("ambiguous_relationship", err.Error()), nil
			}
			return nil, fmt.Errorf("resolve joins: %w", err)
		}

		jsonResult, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// registerGetGraphTool adds the get_graph tool.
func registerGetGraphTool(s *server.MCPServer, deps *GraphToolDeps) {
	tool := mcp.NewTool(
		"get_graph",
		mcp.WithDescription(
			"Export the complete relationship graph: every table with its columns and every "+
				"relationship edge with its compound join keys, join type, and context label.",
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonResult, err := json.Marshal(deps.Exporter.Export())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal export: %w", err)
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// registerGetStatsTool adds the get_stats tool.
func registerGetStatsTool(s *server.MCPServer, deps *GraphToolDeps) {
	tool := mcp.NewTool(
		"get_stats",
		mcp.WithDescription(
			"Summarize the relationship graph: table and relationship counts, average "+
				"connections per table, and whether every table is reachable from every other.",
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonResult, err := json.Marshal(deps.Graph.Stats())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal stats: %w", err)
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}
