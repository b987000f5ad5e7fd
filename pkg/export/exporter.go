// Package export projects the schema catalog and relationship graph into
// a serializable record form for external visualization and storage.
package export

import (
	"strings"

	"go.uber.org/zap"

	"github.com/querygraph-inc/querygraph-engine/pkg/catalog"
	"github.com/querygraph-inc/querygraph-engine/pkg/graph"
	"github.com/querygraph-inc/querygraph-engine/pkg/models"
)

// Exporter is a stateless, read-only projection over a catalog and
// graph. It performs no normalization, filtering, or renaming, so the
// exported record set reconstructs an equivalent graph.
type Exporter struct {
	catalog *catalog.Catalog
	graph   *graph.Graph
}

// New creates an exporter over the given catalog and graph.
func New(cat *catalog.Catalog, g *graph.Graph) *Exporter {
	return &Exporter{catalog: cat, graph: g}
}

// Export returns every table and every edge, tables in catalog
// declaration order and edges in edge declaration order.
func (e *Exporter) Export() models.GraphExport {
	tables := e.catalog.AllTables()
	out := models.GraphExport{
		Tables: make([]models.TableRecord, 0, len(tables)),
		Edges:  make([]models.EdgeRecord, 0),
	}

	for _, name := range tables {
		table, err := e.catalog.GetTable(name)
		if err != nil {
			// AllTables and GetTable share one immutable map; a miss here
			// is unreachable.
			continue
		}
		out.Tables = append(out.Tables, models.TableRecord{
			Name:        table.Name,
			ColumnCount: len(table.Columns),
			Columns:     table.Columns,
		})
	}

	for _, edge := range e.graph.AllEdges() {
		out.Edges = append(out.Edges, models.EdgeRecord{
			From:          edge.FromTable,
			To:            edge.ToTable,
			SourceColumns: edge.SourceColumns,
			TargetColumns: edge.TargetColumns,
			JoinType:      edge.JoinType,
			Context:       edge.Context,
			Description:   edge.Description,
		})
	}

	return out
}

// Rebuild reconstructs a catalog and graph from an exported record set.
// The result is equivalent to the original: same tables, column lists,
// compound keys, join types, and contexts.
func Rebuild(data models.GraphExport, logger *zap.Logger) (*catalog.Catalog, *graph.Graph, error) {
	tables := make([]models.Table, 0, len(data.Tables))
	for _, record := range data.Tables {
		tables = append(tables, models.Table{
			Name:    record.Name,
			Columns: record.Columns,
		})
	}

	cat, err := catalog.New(tables)
	if err != nil {
		return nil, nil, err
	}

	declarations := make([]models.RelationshipDeclaration, 0, len(data.Edges))
	for _, record := range data.Edges {
		declarations = append(declarations, models.RelationshipDeclaration{
			Table1:      record.From,
			Table2:      record.To,
			JoinKey1:    strings.Join(record.SourceColumns, models.CompoundKeyDelimiter),
			JoinKey2:    strings.Join(record.TargetColumns, models.CompoundKeyDelimiter),
			JoinType:    record.JoinType,
			Context:     record.Context,
			Description: record.Description,
		})
	}

	g, err := graph.New(cat, declarations, logger)
	if err != nil {
		return nil, nil, err
	}

	return cat, g, nil
}
