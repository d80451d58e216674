package planner

import (
	"hotarudb/catalog"
	"hotarudb/parser/statements"

	"github.com/cockroachdb/errors"
)

func BuildSelectPlan(ct *catalog.Catalog, selectStmt *statements.SelectStmt) (Plan, error) {
	table, err := ct.LookupTable(selectStmt.From)
	if errors.Is(err, catalog.TableNotFoundError) {
		return nil, errors.Errorf("table not found: %s", selectStmt.From)
	}
	if err != nil {
		return nil, err
	}
	desc := table.Descriptor

	columnNames := make([]string, 0)
	columnOrders := make([]uint64, 0)
	schema := make(catalog.ColumnSchemas, 0)
	if selectStmt.IsAllColumns {
		for order, col := range desc.Columns {
			columnNames = append(columnNames, col.Name)
			columnOrders = append(columnOrders, uint64(order))
			schema = append(schema, col)
		}
	} else {
		for _, col := range selectStmt.ColumnNames {
			order, found := desc.Columns.Contains(col)
			if !found {
				return nil, errors.Errorf("column not found: %s", col)
			}
			columnNames = append(columnNames, col)
			columnOrders = append(columnOrders, order)
			schema = append(schema, desc.Columns[order])
		}
	}

	return &SeqScanPlan{
		TableName:       desc.Name,
		ColumnNames:     columnNames,
		ColumnOrders:    columnOrders,
		Schema:          schema,
		WhereExpression: selectStmt.Where,
	}, nil
}
