package ddl

import (
	"fmt"

	"github.com/xwb1989/sqlparser"
)

type DropTableStmt struct {
	TableName         string
	IgnoreIfNotExists bool
}

func BuildDropTableStmt(statement *sqlparser.DDL) (*DropTableStmt, error) {
	tableName := statement.Table.Name.String()
	if tableName == "" {
		tableName = statement.NewName.Name.String()
	}
	if tableName == "" {
		return nil, fmt.Errorf("table name is empty")
	}

	return &DropTableStmt{
		TableName:         tableName,
		IgnoreIfNotExists: statement.IfExists,
	}, nil
}
