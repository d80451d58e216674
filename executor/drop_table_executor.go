package executor

import (
	"hotarudb/catalog"
	"hotarudb/planner"
)

type DropTableExecutor struct {
	catalog *catalog.Catalog
}

func NewDropTableExecutor(ct *catalog.Catalog) *DropTableExecutor {
	return &DropTableExecutor{
		catalog: ct,
	}
}

// An explicit DROP TABLE purges the data directory along with the
// definition.
func (e *DropTableExecutor) Execute(pl planner.DropTablePlan) (*ResultSet, error) {
	if err := e.catalog.DropTable(pl.TableName, pl.IgnoreIfNotExists, true); err != nil {
		return nil, err
	}

	return &ResultSet{
		Message: "successfully dropped table!",
	}, nil
}
