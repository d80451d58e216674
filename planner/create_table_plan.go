package planner

import (
	"hotarudb/catalog"
	"hotarudb/parser/statements/ddl"
)

type CreateTablePlan struct {
	Descriptor     *catalog.TableDescriptor
	IgnoreIfExists bool
}

func BuildCreateTablePlan(stmt *ddl.CreateTableStmt) (Plan, error) {
	return &CreateTablePlan{
		Descriptor:     stmt.Descriptor,
		IgnoreIfExists: stmt.IgnoreIfExists,
	}, nil
}
