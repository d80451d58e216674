package planner

import (
	"hotarudb/parser/statements/ddl"
)

type DropTablePlan struct {
	TableName         string
	IgnoreIfNotExists bool
}

func BuildDropTablePlan(stmt *ddl.DropTableStmt) (Plan, error) {
	return &DropTablePlan{
		TableName:         stmt.TableName,
		IgnoreIfNotExists: stmt.IgnoreIfNotExists,
	}, nil
}
