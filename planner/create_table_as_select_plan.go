package planner

import (
	"hotarudb/catalog"
	"hotarudb/parser/statements/ddl"

	"github.com/cockroachdb/errors"
)

// CreateTableAsSelectPlan registers a table and populates it from Query as
// one logical step. The descriptor may declare no columns, in which case
// the table shape is inferred from the query at materialization time.
type CreateTableAsSelectPlan struct {
	Descriptor     *catalog.TableDescriptor
	Query          RowPlan
	IgnoreIfExists bool
}

func BuildCreateTableAsSelectPlan(ct *catalog.Catalog, stmt *ddl.CreateTableAsSelectStmt) (Plan, error) {
	queryPlan, err := BuildSelectPlan(ct, stmt.Select)
	if err != nil {
		return nil, err
	}
	rowPlan, ok := queryPlan.(RowPlan)
	if !ok {
		return nil, errors.Errorf("query does not produce rows: %T", queryPlan)
	}

	return &CreateTableAsSelectPlan{
		Descriptor:     stmt.Descriptor,
		Query:          rowPlan,
		IgnoreIfExists: stmt.IgnoreIfExists,
	}, nil
}
