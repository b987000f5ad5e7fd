// Package catalog holds the immutable registry of table schemas.
package catalog

import (
	"fmt"

	"github.com/querygraph-inc/querygraph-engine/pkg/apperrors"
	"github.com/querygraph-inc/querygraph-engine/pkg/models"
)

// Catalog is an immutable registry of tables keyed by name. Built once
// per session and safe for concurrent reads; it never changes after New
// returns.
type Catalog struct {
	tables map[string]models.Table
	// names preserves declaration order for deterministic listings.
	names []string
}

// New builds a catalog from table declarations. It fails if two tables
// share a name or a table declares no columns; a failed build publishes
// nothing.
func New(tables []models.Table) (*Catalog, error) {
	c := &Catalog{
		tables: make(map[string]models.Table, len(tables)),
		names:  make([]string, 0, len(tables)),
	}

	for _, table := range tables {
		if table.Name == "" {
			return nil, fmt.Errorf("%w: table with empty name", apperrors.ErrInvalidSchema)
		}
		if len(table.Columns) == 0 {
			return nil, fmt.Errorf("%w: table %q has no columns", apperrors.ErrInvalidSchema, table.Name)
		}
		if _, exists := c.tables[table.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate table %q", apperrors.ErrInvalidSchema, table.Name)
		}
		c.tables[table.Name] = table
		c.names = append(c.names, table.Name)
	}

	return c, nil
}

// GetTable returns the table with the given name.
func (c *Catalog) GetTable(name string) (models.Table, error) {
	table, ok := c.tables[name]
	if !ok {
		return models.Table{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownTable, name)
	}
	return table, nil
}

// HasTable reports whether a table with the given name exists.
func (c *Catalog) HasTable(name string) bool {
	_, ok := c.tables[name]
	return ok
}

// AllTables returns all table names in declaration order.
func (c *Catalog) AllTables() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Len returns the number of tables in the catalog.
func (c *Catalog) Len() int {
	return len(c.names)
}
