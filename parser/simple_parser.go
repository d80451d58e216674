package parser

import (
	"fmt"
	"hotarudb/parser/statements"
	"hotarudb/parser/statements/ddl"
	"regexp"

	"github.com/xwb1989/sqlparser"
)

type SimpleParser struct {
}

func NewSimpleParser() *SimpleParser {
	return &SimpleParser{}
}

var createTablePrefixRe = regexp.MustCompile(`(?is)^\s*create\s+table\b`)

func (sp *SimpleParser) Parse(SqlString string) (Stmt, error) {
	// CREATE TABLE has its own front end: sqlparser's frozen grammar knows
	// nothing of IF NOT EXISTS, PARTITIONED BY or AS SELECT.
	if createTablePrefixRe.MatchString(SqlString) {
		return ddl.ParseCreateTable(SqlString)
	}

	stmt, err := sqlparser.Parse(SqlString)
	if err != nil {
		return nil, err
	}

	switch s := stmt.(type) {
	case *sqlparser.Select:
		return statements.BuildSelectStmt(s)
	case *sqlparser.Insert:
		return statements.BuildInsertStmt(s)
	case *sqlparser.DDL:
		return sp.parseDDLStatement(s)
	default:
		return nil, fmt.Errorf("not supported: %T", s)
	}
}

func (sp *SimpleParser) parseDDLStatement(ddlStatement *sqlparser.DDL) (Stmt, error) {
	switch ddlStatement.Action {
	case "drop":
		return ddl.BuildDropTableStmt(ddlStatement)
	default:
		return nil, fmt.Errorf("not supported DDL action: %s", ddlStatement.Action)
	}
}
