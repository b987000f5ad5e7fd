// Package prompts renders resolution results and catalog summaries into
// prompt context for the external LLM collaborators. Only the text is
// built here; making the model call is the caller's job.
package prompts

import (
	"fmt"
	"strings"

	"github.com/querygraph-inc/querygraph-engine/pkg/models"
)

// BuildSchemaContext formats the catalog for the table-identification
// step. maxColumns bounds how many columns are listed per table;
// pass 0 for no limit. Column order is catalog order.
func BuildSchemaContext(tables []models.Table, maxColumns int) string {
	var b strings.Builder
	b.WriteString("Available tables and their descriptions:\n\n")

	for _, table := range tables {
		fmt.Fprintf(&b, "Table: %s\n", table.Name)
		b.WriteString("Key columns:\n")
		columns := table.Columns
		if maxColumns > 0 && len(columns) > maxColumns {
			columns = columns[:maxColumns]
		}
		for _, col := range columns {
			fmt.Fprintf(&b, "  - %s: %s\n", col.Name, col.Description)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// BuildSQLGenerationPrompt renders a resolution result into the prompt
// context for the SQL-generation step. Composite joins are called out
// explicitly because models reliably drop all but one condition of a
// multi-part ON clause unless told not to.
func BuildSQLGenerationPrompt(userQuery string, result *models.ResolutionResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a SQL query for the following request.\n\nUSER QUERY: %q\n\n", userQuery)
	fmt.Fprintf(&b, "TABLES TO USE: %s\n\nJOIN RELATIONSHIPS:\n", strings.Join(result.AllTablesNeeded, ", "))

	for _, join := range result.Joins {
		fmt.Fprintf(&b, "\n%s %s JOIN %s\nON %s\n", join.FromTable, join.JoinType, join.ToTable, join.JoinCondition)
		if strings.Contains(join.JoinCondition, " AND ") {
			fmt.Fprintf(&b, "*** THIS IS A COMPOSITE JOIN - YOU MUST USE ALL CONDITIONS: %s ***\n", join.JoinCondition)
		}
		if join.Description != "" {
			fmt.Fprintf(&b, "(%s)\n", join.Description)
		}
	}

	b.WriteString("\n\nTABLE SCHEMAS (with all columns and descriptions):\n")
	for _, table := range result.AllTablesNeeded {
		fmt.Fprintf(&b, "\n%s:\n", table)
		for _, col := range result.Schemas[table] {
			fmt.Fprintf(&b, "  - %s: %s\n", col.Name, col.Description)
		}
	}

	b.WriteString(`
INSTRUCTIONS FOR SQL GENERATION:

1. Copy the EXACT join condition from above into your ON clause. If a
   join condition contains " AND ", every part of it must appear.
2. SELECT relevant columns based on the user query.
3. Include appropriate WHERE clauses if needed.
4. Use table aliases for readability.

Return ONLY the SQL query without any explanations, markdown formatting, or code blocks.
`)

	return b.String()
}
