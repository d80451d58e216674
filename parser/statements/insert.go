package statements

import (
	"github.com/cockroachdb/errors"
	"github.com/xwb1989/sqlparser"
)

type InsertStmt struct {
	Into        string
	ColumnNames []string
	Values      []string
}

// BuildInsertStmt converts a parsed INSERT into one single-row statement.
// Only plain literal VALUES rows are accepted.
func BuildInsertStmt(statement *sqlparser.Insert) (*InsertStmt, error) {
	rows, ok := statement.Rows.(sqlparser.Values)
	if !ok {
		return nil, errors.Errorf("not supported insert source: %T", statement.Rows)
	}
	if len(rows) != 1 {
		return nil, errors.Errorf("insert expects exactly one row of values, got %d", len(rows))
	}

	columnNames := make([]string, 0, len(statement.Columns))
	for _, colName := range statement.Columns {
		columnNames = append(columnNames, colName.String())
	}

	row := rows[0]
	if len(columnNames) > 0 && len(row) != len(columnNames) {
		return nil, errors.Errorf("insert lists %d columns but %d values", len(columnNames), len(row))
	}

	values := make([]string, 0, len(row))
	for _, expr := range row {
		literal, ok := expr.(*sqlparser.SQLVal)
		if !ok {
			return nil, errors.Errorf("not supported insert value: %T", expr)
		}
		values = append(values, string(literal.Val))
	}

	return &InsertStmt{
		Into:        statement.Table.Name.String(),
		ColumnNames: columnNames,
		Values:      values,
	}, nil
}
