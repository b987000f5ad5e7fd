package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querygraph-inc/querygraph-engine/pkg/apperrors"
	"github.com/querygraph-inc/querygraph-engine/pkg/models"
)

func testTables() []models.Table {
	return []models.Table{
		{
			Name: "Counterparty",
			Columns: []models.Column{
				{Name: "Entity", Description: "Reporting legal entity code"},
				{Name: "Counterparty ID", Description: "Unique identifier"},
			},
		},
		{
			Name: "Trade",
			Columns: []models.Column{
				{Name: "Entity", Description: "Reporting legal entity code"},
				{Name: "Reporting Counterparty ID", Description: "Counterparty of the trade"},
			},
		},
	}
}

func TestNew_ValidTables(t *testing.T) {
	cat, err := New(testTables())
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, []string{"Counterparty", "Trade"}, cat.AllTables())
}

func TestNew_DuplicateTableName(t *testing.T) {
	tables := testTables()
	tables = append(tables, tables[0])

	_, err := New(tables)
	require.ErrorIs(t, err, apperrors.ErrInvalidSchema)
	assert.Contains(t, err.Error(), "Counterparty")
}

func TestNew_EmptyColumnList(t *testing.T) {
	_, err := New([]models.Table{{Name: "Empty"}})
	require.ErrorIs(t, err, apperrors.ErrInvalidSchema)
}

func TestNew_EmptyTableName(t *testing.T) {
	_, err := New([]models.Table{{Name: "", Columns: []models.Column{{Name: "x"}}}})
	require.ErrorIs(t, err, apperrors.ErrInvalidSchema)
}

func TestGetTable(t *testing.T) {
	cat, err := New(testTables())
	require.NoError(t, err)

	table, err := cat.GetTable("Trade")
	require.NoError(t, err)
	assert.Equal(t, "Trade", table.Name)
	// Column order is declaration order.
	assert.Equal(t, []string{"Entity", "Reporting Counterparty ID"}, table.ColumnNames())
}

func TestGetTable_Unknown(t *testing.T) {
	cat, err := New(testTables())
	require.NoError(t, err)

	_, err = cat.GetTable("Missing")
	require.ErrorIs(t, err, apperrors.ErrUnknownTable)
	assert.Contains(t, err.Error(), "Missing")
}

func TestHasTable(t *testing.T) {
	cat, err := New(testTables())
	require.NoError(t, err)

	assert.True(t, cat.HasTable("Counterparty"))
	assert.False(t, cat.HasTable("counterparty")) // lookup is exact-match
}

func TestAllTables_ReturnsCopy(t *testing.T) {
	cat, err := New(testTables())
	require.NoError(t, err)

	names := cat.AllTables()
	names[0] = "mutated"
	assert.Equal(t, []string{"Counterparty", "Trade"}, cat.AllTables())
}
