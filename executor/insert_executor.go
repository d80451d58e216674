package executor

import (
	"hotarudb/catalog"
	"hotarudb/planner"
	"hotarudb/storage"
)

type InsertExecutor struct {
	catalog     *catalog.Catalog
	diskManager *storage.DiskManager
}

func NewInsertExecutor(ct *catalog.Catalog, dm *storage.DiskManager) *InsertExecutor {
	return &InsertExecutor{
		catalog:     ct,
		diskManager: dm,
	}
}

// Execute appends one VALUES row to the table, routed into its partition
// directory. Appends never touch existing data files.
func (e *InsertExecutor) Execute(pl planner.InsertPlan) (*ResultSet, error) {
	table, err := e.catalog.LookupTable(pl.Into)
	if err != nil {
		return nil, err
	}
	desc := table.Descriptor

	partitionValues, dataRow, err := splitPartitionValues(desc, pl.Row, nil)
	if err != nil {
		return nil, err
	}

	dir := storage.PartitionPath(table.Location, desc.PartitionColumns, partitionValues)
	writer, err := storage.NewRowWriter(dir, desc.Storage.FieldDelimiter, desc.Storage.Compressed)
	if err != nil {
		return nil, err
	}
	if err := writer.Write(dataRow); err != nil {
		writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return &ResultSet{
		Message: "successfully inserted!",
	}, nil
}
