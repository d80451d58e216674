package planner

import (
	"hotarudb/catalog"
	"hotarudb/parser"
)

type Planner interface {
	MakePlan(stmt parser.Stmt) (Plan, error)
}

type Plan interface {
}

// RowPlan is a plan that produces rows, with a known output schema.
type RowPlan interface {
	Plan
	OutputSchema() catalog.ColumnSchemas
}
