package ddl

import (
	"fmt"
	"hotarudb/catalog"
	"hotarudb/parser/statements"
	"regexp"
	"strings"

	"github.com/xwb1989/sqlparser"
)

type CreateTableStmt struct {
	Descriptor     *catalog.TableDescriptor
	IgnoreIfExists bool
}

type CreateTableAsSelectStmt struct {
	Descriptor     *catalog.TableDescriptor
	IgnoreIfExists bool
	Select         *statements.SelectStmt
}

// The frozen sqlparser fork has no grammar for IF NOT EXISTS, PARTITIONED
// BY, or CREATE TABLE ... AS SELECT, so the head of the statement is taken
// apart here and only the SELECT tail goes through sqlparser.
var createTableRe = regexp.MustCompile(`(?is)^\s*create\s+table\s+` +
	`(if\s+not\s+exists\s+)?` +
	`([A-Za-z_]\w*)\s*` +
	`(?:\(([^)]*)\)\s*)?` +
	`(?:partitioned\s+by\s*\(([^)]*)\)\s*)?` +
	`(?:as\s+(select\b.*?))?\s*;?\s*$`)

func ParseCreateTable(sql string) (interface{}, error) {
	m := createTableRe.FindStringSubmatch(sql)
	if m == nil {
		return nil, fmt.Errorf("can not parse create table statement")
	}
	ignoreIfExists := m[1] != ""
	tableName := m[2]
	columnList := m[3]
	partitionList := m[4]
	selectTail := m[5]

	columns, err := parseColumnList(columnList)
	if err != nil {
		return nil, err
	}

	partitionColumns, partitionSchemas, err := parsePartitionList(partitionList)
	if err != nil {
		return nil, err
	}
	// Partition columns are stored after the regular columns.
	columns = append(columns, partitionSchemas...)

	descriptor := &catalog.TableDescriptor{
		Name:             tableName,
		Columns:          columns,
		PartitionColumns: partitionColumns,
	}

	if selectTail == "" {
		if len(descriptor.Columns) == 0 {
			return nil, fmt.Errorf("columns is empty")
		}
		return &CreateTableStmt{
			Descriptor:     descriptor,
			IgnoreIfExists: ignoreIfExists,
		}, nil
	}

	parsed, err := sqlparser.Parse(selectTail)
	if err != nil {
		return nil, err
	}
	selectStatement, ok := parsed.(*sqlparser.Select)
	if !ok {
		return nil, fmt.Errorf("not supported query type: %T", parsed)
	}
	selectStmt, err := statements.BuildSelectStmt(selectStatement)
	if err != nil {
		return nil, err
	}

	return &CreateTableAsSelectStmt{
		Descriptor:     descriptor,
		IgnoreIfExists: ignoreIfExists,
		Select:         selectStmt,
	}, nil
}

func parseColumnList(list string) (catalog.ColumnSchemas, error) {
	columns := make(catalog.ColumnSchemas, 0)
	if strings.TrimSpace(list) == "" {
		return columns, nil
	}
	for _, entry := range strings.Split(list, ",") {
		fields := strings.Fields(entry)
		if len(fields) != 2 {
			return nil, fmt.Errorf("can not parse column definition: %q", strings.TrimSpace(entry))
		}
		columnType, err := mapType(fields[1])
		if err != nil {
			return nil, err
		}
		columns = append(columns, catalog.ColumnSchema{
			Name: fields[0],
			Type: columnType,
		})
	}
	return columns, nil
}

// Partition columns may be declared with or without a type; without one
// they default to string, which is how they land in directory names anyway.
func parsePartitionList(list string) ([]string, catalog.ColumnSchemas, error) {
	names := make([]string, 0)
	schemas := make(catalog.ColumnSchemas, 0)
	if strings.TrimSpace(list) == "" {
		return names, schemas, nil
	}
	for _, entry := range strings.Split(list, ",") {
		fields := strings.Fields(entry)
		switch len(fields) {
		case 1:
			names = append(names, fields[0])
			schemas = append(schemas, catalog.ColumnSchema{Name: fields[0], Type: catalog.String})
		case 2:
			columnType, err := mapType(fields[1])
			if err != nil {
				return nil, nil, err
			}
			names = append(names, fields[0])
			schemas = append(schemas, catalog.ColumnSchema{Name: fields[0], Type: columnType})
		default:
			return nil, nil, fmt.Errorf("can not parse partition column: %q", strings.TrimSpace(entry))
		}
	}
	return names, schemas, nil
}

func mapType(name string) (catalog.ColumnType, error) {
	switch strings.ToLower(name) {
	case "text", "string", "varchar":
		return catalog.String, nil
	default:
		return catalog.Unknown, fmt.Errorf("unknown type: %s", name)
	}
}
