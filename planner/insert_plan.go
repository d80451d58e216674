package planner

import (
	"hotarudb/catalog"
	"hotarudb/parser/statements"

	"github.com/cockroachdb/errors"
)

// InsertPlan carries a single VALUES row, already laid out in the table's
// declared column order.
type InsertPlan struct {
	Into string
	Row  []string
}

func BuildInsertPlan(ct *catalog.Catalog, insertStmt *statements.InsertStmt) (Plan, error) {
	table, err := ct.LookupTable(insertStmt.Into)
	if errors.Is(err, catalog.TableNotFoundError) {
		return nil, errors.Errorf("table not found: %s", insertStmt.Into)
	}
	if err != nil {
		return nil, err
	}
	desc := table.Descriptor

	columnNames := insertStmt.ColumnNames
	if len(columnNames) == 0 {
		columnNames = desc.Columns.Names()
	}
	if len(columnNames) != len(insertStmt.Values) {
		return nil, errors.Errorf("column length and value length are not matched. column length: %d, value length: %d",
			len(columnNames), len(insertStmt.Values))
	}

	row := make([]string, len(desc.Columns))
	seen := make([]bool, len(desc.Columns))
	for i, col := range columnNames {
		order, found := desc.Columns.Contains(col)
		if !found {
			return nil, errors.Errorf("column not found: %s", col)
		}
		row[order] = insertStmt.Values[i]
		seen[order] = true
	}
	for order, ok := range seen {
		if !ok {
			row[order] = "NULL" // TODO: support NULL
		}
	}

	return &InsertPlan{
		Into: desc.Name,
		Row:  row,
	}, nil
}
