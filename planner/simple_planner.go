package planner

import (
	"fmt"
	"hotarudb/catalog"
	"hotarudb/parser"
	"hotarudb/parser/statements"
	"hotarudb/parser/statements/ddl"
)

type SimplePlanner struct {
	catalog *catalog.Catalog
}

func NewSimplePlanner(catalog *catalog.Catalog) *SimplePlanner {
	return &SimplePlanner{
		catalog: catalog,
	}
}

func (p *SimplePlanner) MakePlan(stmt parser.Stmt) (Plan, error) {
	switch s := stmt.(type) {
	case *statements.SelectStmt:
		return BuildSelectPlan(p.catalog, s)
	case *statements.InsertStmt:
		return BuildInsertPlan(p.catalog, s)
	case *ddl.CreateTableStmt:
		return BuildCreateTablePlan(s)
	case *ddl.CreateTableAsSelectStmt:
		return BuildCreateTableAsSelectPlan(p.catalog, s)
	case *ddl.DropTableStmt:
		return BuildDropTablePlan(s)
	default:
		return nil, fmt.Errorf("not supported statement type: %T", s)
	}
}
