package executor

import (
	"hotarudb/catalog"
	"hotarudb/planner"
)

// ResultSet
// TODO: Create a new package and move this?
type ResultSet struct {
	Header  []string
	Rows    [][]string
	Message string
}

// Metastore is the catalog surface the executors need. *catalog.Catalog
// implements it.
type Metastore interface {
	Exists(name string) (bool, error)
	CreateTable(desc *catalog.TableDescriptor, ignoreIfExists bool) error
	Lookup(name string) (catalog.Relation, error)
	DropTable(name string, ignoreIfNotExists bool, purge bool) error
}

// InsertEngine writes the rows a plan produces into a table handle.
type InsertEngine interface {
	ExecuteInsert(target *catalog.Table, partitionSpec map[string]string, plan planner.Plan, overwrite bool, ifNotExists bool) (int, error)
}
