package models

// TableRecord is the exported form of a catalog table.
type TableRecord struct {
	Name        string   `json:"name"`
	ColumnCount int      `json:"column_count"`
	Columns     []Column `json:"columns"`
}

// EdgeRecord is the exported form of a relationship edge, in edge
// declaration order. Re-importing the record set reconstructs an
// equivalent graph, so no normalization or renaming happens here.
type EdgeRecord struct {
	From          string   `json:"from"`
	To            string   `json:"to"`
	SourceColumns []string `json:"source_columns"`
	TargetColumns []string `json:"target_columns"`
	JoinType      JoinType `json:"join_type"`
	Context       string   `json:"context"`
	Description   string   `json:"description,omitempty"`
}

// GraphExport is the complete serializable projection of the schema
// catalog and relationship graph.
type GraphExport struct {
	Tables []TableRecord `json:"tables"`
	Edges  []EdgeRecord  `json:"edges"`
}

// GraphStats summarizes the shape of the relationship graph.
type GraphStats struct {
	TotalTables        int      `json:"total_tables"`
	TotalRelationships int      `json:"total_relationships"`
	Tables             []string `json:"tables"`
	AverageConnections float64  `json:"average_connections"`
	IsConnected        bool     `json:"is_connected"`
}
