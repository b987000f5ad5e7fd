package models

// Column describes a single table column. Immutable once loaded.
type Column struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Table describes a logical database table with its ordered column list.
// Column order is declaration order and is preserved everywhere: callers
// summarizing "the first N columns" rely on it.
type Table struct {
	Name    string   `json:"name" yaml:"name"`
	Columns []Column `json:"columns" yaml:"columns"`
}

// ColumnNames returns the column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}
