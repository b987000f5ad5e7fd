package models

// ResolutionRequest is the per-call input to the join resolver. Context
// is optional; empty means no analytical context was supplied.
type ResolutionRequest struct {
	Tables  []string `json:"tables"`
	Context string   `json:"context,omitempty"`
}

// SelectedJoin is one join edge chosen for a resolution, with the
// composite predicate already rendered in the edge's declared direction.
type SelectedJoin struct {
	FromTable     string   `json:"from_table"`
	ToTable       string   `json:"to_table"`
	JoinCondition string   `json:"join_condition"`
	JoinType      JoinType `json:"join_type"`
	Context       string   `json:"context"`
	Description   string   `json:"description,omitempty"`
}

// ResolutionResult is the per-call output of the join resolver, consumed
// by an external SQL-rendering collaborator.
type ResolutionResult struct {
	RequestedTables []string            `json:"requested_tables"`
	AllTablesNeeded []string            `json:"all_tables_needed"`
	Joins           []SelectedJoin      `json:"joins"`
	Schemas         map[string][]Column `json:"schemas"`
	Context         string              `json:"context,omitempty"`
}
