package planner

import (
	"hotarudb/catalog"

	"github.com/cockroachdb/errors"
)

var SchemaMismatchError = errors.New("schema mismatch")

// ProjectionPlan reorders the output columns of its child. It never adds,
// drops, or renames columns.
type ProjectionPlan struct {
	Child        RowPlan
	ColumnNames  []string
	ColumnOrders []uint64
	schema       catalog.ColumnSchemas
}

func (p *ProjectionPlan) OutputSchema() catalog.ColumnSchemas {
	return p.schema
}

// Reconcile wraps query in a projection whose output column order equals
// the declared column order. Matching is by name, byte-wise, the same way
// the catalog compares identifiers. No type check happens here; coercion,
// if any, is the engine's problem.
//
// With no declared columns the projection is the identity and the table
// shape is inferred from the query.
func Reconcile(declared catalog.ColumnSchemas, query RowPlan) (*ProjectionPlan, error) {
	output := query.OutputSchema()

	if len(declared) == 0 {
		orders := make([]uint64, 0, len(output))
		for i := range output {
			orders = append(orders, uint64(i))
		}
		return &ProjectionPlan{
			Child:        query,
			ColumnNames:  output.Names(),
			ColumnOrders: orders,
			schema:       output,
		}, nil
	}

	// The name sets must be equal in both directions: the projection only
	// reorders, it never drops a query column on the floor.
	if len(output) != len(declared) {
		for _, col := range output {
			if _, found := declared.Contains(col.Name); !found {
				return nil, errors.Wrapf(SchemaMismatchError,
					"query column %s is not declared on the table", col.Name)
			}
		}
		return nil, errors.Wrapf(SchemaMismatchError,
			"query produces %d columns, table declares %d", len(output), len(declared))
	}

	columnNames := make([]string, 0, len(declared))
	columnOrders := make([]uint64, 0, len(declared))
	for _, col := range declared {
		order, found := output.Contains(col.Name)
		if !found {
			return nil, errors.Wrapf(SchemaMismatchError,
				"declared column %s is not produced by the query", col.Name)
		}
		columnNames = append(columnNames, col.Name)
		columnOrders = append(columnOrders, order)
	}

	return &ProjectionPlan{
		Child:        query,
		ColumnNames:  columnNames,
		ColumnOrders: columnOrders,
		schema:       declared,
	}, nil
}
