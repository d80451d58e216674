package executor

import (
	"hotarudb/catalog"
	"hotarudb/planner"
)

type CreateTableExecutor struct {
	catalog *catalog.Catalog
}

func NewCreateTableExecutor(ct *catalog.Catalog) *CreateTableExecutor {
	return &CreateTableExecutor{
		catalog: ct,
	}
}

func (e *CreateTableExecutor) Execute(pl planner.CreateTablePlan) (*ResultSet, error) {
	pl.Descriptor.Storage.FillDefaults()
	if err := e.catalog.CreateTable(pl.Descriptor, pl.IgnoreIfExists); err != nil {
		return nil, err
	}

	return &ResultSet{
		Message: "successfully created table!",
	}, nil
}
