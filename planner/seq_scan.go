package planner

import (
	"hotarudb/catalog"
	"hotarudb/expression"
)

type SeqScanPlan struct {
	TableName       string
	ColumnNames     []string
	ColumnOrders    []uint64
	Schema          catalog.ColumnSchemas
	WhereExpression expression.Expression
}

func (p *SeqScanPlan) OutputSchema() catalog.ColumnSchemas {
	return p.Schema
}
