package models

import (
	"fmt"

	"github.com/google/uuid"
)

// JoinType identifies the SQL join flavor for a relationship edge.
type JoinType string

// Join types supported on relationship edges.
const (
	JoinTypeInner JoinType = "INNER"
	JoinTypeLeft  JoinType = "LEFT"
	JoinTypeRight JoinType = "RIGHT"
	JoinTypeFull  JoinType = "FULL"
)

// ValidJoinTypes contains all valid join type values.
var ValidJoinTypes = []JoinType{
	JoinTypeInner,
	JoinTypeLeft,
	JoinTypeRight,
	JoinTypeFull,
}

// IsValidJoinType checks if the given join type is valid.
func IsValidJoinType(jt JoinType) bool {
	for _, v := range ValidJoinTypes {
		if v == jt {
			return true
		}
	}
	return false
}

// DefaultContext is the context label applied to a relationship when no
// analytical variant applies. Context matching treats it specially: it is
// never a substring match target, only a fallback.
const DefaultContext = "default"

// CompoundKeyDelimiter separates column names inside a compound join key
// string such as "Entity+Counterparty ID".
const CompoundKeyDelimiter = "+"

// RelationshipDeclaration is the loader-facing form of one relationship:
// two table names, a compound key per side, a join type, and an optional
// context label. JoinKey1 and JoinKey2 must decompose into equal-length
// ordered column lists.
type RelationshipDeclaration struct {
	Table1      string   `json:"table1" yaml:"table1"`
	Table2      string   `json:"table2" yaml:"table2"`
	JoinKey1    string   `json:"join_key1" yaml:"join_key1"`
	JoinKey2    string   `json:"join_key2" yaml:"join_key2"`
	JoinType    JoinType `json:"join_type" yaml:"join_type"`
	Context     string   `json:"context,omitempty" yaml:"context,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// RelationshipEdge is one directed, possibly-parallel edge between two
// catalog tables. Position i pairs SourceColumns[i] on FromTable with
// TargetColumns[i] on ToTable; together the positions form a composite
// equality predicate (logical AND).
type RelationshipEdge struct {
	ID            uuid.UUID `json:"id"`
	FromTable     string    `json:"from_table"`
	ToTable       string    `json:"to_table"`
	SourceColumns []string  `json:"source_columns"`
	TargetColumns []string  `json:"target_columns"`
	JoinType      JoinType  `json:"join_type"`
	Context       string    `json:"context"`
	Description   string    `json:"description"`
}

// JoinCondition renders the composite predicate in the edge's declared
// direction: "From.src = To.tgt AND ..." for each column position.
func (e *RelationshipEdge) JoinCondition() string {
	condition := ""
	for i := range e.SourceColumns {
		if i > 0 {
			condition += " AND "
		}
		condition += fmt.Sprintf("%s.%s = %s.%s", e.FromTable, e.SourceColumns[i], e.ToTable, e.TargetColumns[i])
	}
	return condition
}

// IsDefault reports whether this edge carries the literal default context.
func (e *RelationshipEdge) IsDefault() bool {
	return e.Context == DefaultContext
}
