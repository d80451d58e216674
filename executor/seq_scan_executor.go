package executor

import (
	"hotarudb/catalog"
	"hotarudb/expression"
	"hotarudb/planner"
	"hotarudb/storage"

	"github.com/cockroachdb/errors"
)

type SeqScanExecutor struct {
	catalog     *catalog.Catalog
	diskManager *storage.DiskManager
}

func NewSeqScanExecutor(ct *catalog.Catalog, dm *storage.DiskManager) *SeqScanExecutor {
	return &SeqScanExecutor{
		catalog:     ct,
		diskManager: dm,
	}
}

func (e *SeqScanExecutor) Execute(pl planner.SeqScanPlan) (*ResultSet, error) {
	table, err := e.catalog.LookupTable(pl.TableName)
	if err != nil {
		return nil, err
	}

	rows, err := scanTable(e.diskManager, table)
	if err != nil {
		return nil, err
	}

	desc := table.Descriptor
	filteredRows := make([][]string, 0)
	for _, fullRow := range rows {
		if pl.WhereExpression != nil {
			evalResult, err := expression.Eval(pl.WhereExpression, func(column string) (string, bool) {
				order, found := desc.Columns.Contains(column)
				if !found {
					return "", false
				}
				return fullRow[order], true
			})
			if err != nil {
				return nil, err
			}
			if !evalResult {
				continue
			}
		}

		row := make([]string, 0, len(pl.ColumnOrders))
		for _, columnOrder := range pl.ColumnOrders {
			row = append(row, fullRow[columnOrder])
		}
		filteredRows = append(filteredRows, row)
	}

	return &ResultSet{
		Header: pl.ColumnNames,
		Rows:   filteredRows,
	}, nil
}

// scanTable reads every data file of a table and rebuilds full rows in
// declared column order: stored fields for data columns, directory values
// for partition columns.
func scanTable(dm *storage.DiskManager, table *catalog.Table) ([][]string, error) {
	desc := table.Descriptor

	files, err := dm.ListDataFiles(table.Location)
	if err != nil {
		return nil, err
	}

	fullRows := make([][]string, 0)
	for _, file := range files {
		rows, err := storage.ReadRows(file.Path, desc.Storage.FieldDelimiter)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if len(row) != len(desc.Columns)-len(desc.PartitionColumns) {
				return nil, errors.Errorf("corrupt data file %s: got %d fields, want %d",
					file.Path, len(row), len(desc.Columns)-len(desc.PartitionColumns))
			}
			fullRow := make([]string, 0, len(desc.Columns))
			next := 0
			for _, col := range desc.Columns {
				if desc.IsPartitionColumn(col.Name) {
					fullRow = append(fullRow, file.Partition[col.Name])
				} else {
					fullRow = append(fullRow, row[next])
					next++
				}
			}
			fullRows = append(fullRows, fullRow)
		}
	}
	return fullRows, nil
}
