package executor

import (
	"os"
	"path/filepath"

	"hotarudb/catalog"
	"hotarudb/planner"
	"hotarudb/storage"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// LocalEngine executes row plans against the local data directory. It is
// the execution-engine side of the CTAS flow: it runs the plan, routes
// each row into its partition directory inside a staging area, and only
// swaps the staged files in once every row has been written.
type LocalEngine struct {
	catalog     *catalog.Catalog
	diskManager *storage.DiskManager
}

func NewLocalEngine(ct *catalog.Catalog, dm *storage.DiskManager) *LocalEngine {
	return &LocalEngine{
		catalog:     ct,
		diskManager: dm,
	}
}

// ExecuteInsert writes the plan's rows into target. partitionSpec pins
// partition columns to static values; columns it does not cover take their
// value from each row. With overwrite the table's existing data is
// replaced; otherwise staged partition files are moved in alongside it
// (ifNotExists skips partitions that already hold data).
func (e *LocalEngine) ExecuteInsert(target *catalog.Table, partitionSpec map[string]string, plan planner.Plan, overwrite bool, ifNotExists bool) (int, error) {
	rowPlan, ok := plan.(planner.RowPlan)
	if !ok {
		return 0, errors.Errorf("not supported plan type: %T", plan)
	}

	rows, err := e.runPlan(rowPlan)
	if err != nil {
		return 0, err
	}

	desc := target.Descriptor
	stagingDir, err := e.diskManager.NewStagingDir()
	if err != nil {
		return 0, err
	}
	defer e.diskManager.DiscardStaging(stagingDir)

	writers := make(map[string]*storage.RowWriter)
	written := 0
	for _, row := range rows {
		partitionValues, dataRow, err := splitPartitionValues(desc, row, partitionSpec)
		if err != nil {
			return 0, err
		}

		dir := storage.PartitionPath(stagingDir, desc.PartitionColumns, partitionValues)
		writer, ok := writers[dir]
		if !ok {
			writer, err = storage.NewRowWriter(dir, desc.Storage.FieldDelimiter, desc.Storage.Compressed)
			if err != nil {
				return 0, err
			}
			writers[dir] = writer
		}

		if err := writer.Write(dataRow); err != nil {
			return 0, err
		}
		written++
	}

	for _, writer := range writers {
		if err := writer.Close(); err != nil {
			return 0, err
		}
	}

	if overwrite {
		if err := e.diskManager.CommitOverwrite(stagingDir, target.Location); err != nil {
			return 0, err
		}
	} else {
		if err := e.appendStaged(stagingDir, target.Location, ifNotExists); err != nil {
			return 0, err
		}
	}

	log.Debugf("insert into %s wrote %d rows (overwrite=%v)", desc.Name, written, overwrite)

	return written, nil
}

// runPlan produces the rows of a plan, in the plan's output column order.
func (e *LocalEngine) runPlan(pl planner.RowPlan) ([][]string, error) {
	switch p := pl.(type) {
	case *planner.SeqScanPlan:
		result, err := NewSeqScanExecutor(e.catalog, e.diskManager).Execute(*p)
		if err != nil {
			return nil, err
		}
		return result.Rows, nil
	case *planner.ProjectionPlan:
		childRows, err := e.runPlan(p.Child)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(childRows))
		for _, childRow := range childRows {
			row := make([]string, 0, len(p.ColumnOrders))
			for _, order := range p.ColumnOrders {
				row = append(row, childRow[order])
			}
			rows = append(rows, row)
		}
		return rows, nil
	default:
		return nil, errors.Errorf("not supported plan type: %T", p)
	}
}

// appendStaged moves staged partition directories into the table location
// without disturbing existing files.
func (e *LocalEngine) appendStaged(stagingDir string, location string, ifNotExists bool) error {
	return filepath.Walk(stagingDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(stagingDir, path)
		if err != nil {
			return err
		}
		targetDir := filepath.Join(location, filepath.Dir(rel))
		if ifNotExists && partitionHasData(targetDir) {
			return nil
		}
		if err := os.MkdirAll(targetDir, 0755); err != nil {
			return err
		}
		return os.Rename(path, filepath.Join(targetDir, info.Name()))
	})
}

func partitionHasData(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

// splitPartitionValues splits one row into partition values and the data
// fields that go into the file. The row holds the declared columns in
// order, minus any partition column pinned by spec (a statically
// partitioned insert does not select those).
func splitPartitionValues(desc *catalog.TableDescriptor, row []string, spec map[string]string) ([]string, []string, error) {
	expected := len(desc.Columns)
	for _, pc := range desc.PartitionColumns {
		if _, ok := spec[pc]; ok {
			expected--
		}
	}
	if len(row) != expected {
		return nil, nil, errors.Errorf("row has %d values, table %s expects %d",
			len(row), desc.Name, expected)
	}

	valueOf := make(map[string]string, len(desc.Columns))
	next := 0
	for _, col := range desc.Columns {
		if value, ok := spec[col.Name]; ok && desc.IsPartitionColumn(col.Name) {
			valueOf[col.Name] = value
			continue
		}
		valueOf[col.Name] = row[next]
		next++
	}

	partitionValues := make([]string, 0, len(desc.PartitionColumns))
	for _, pc := range desc.PartitionColumns {
		if _, declared := desc.Columns.Contains(pc); !declared {
			return nil, nil, errors.Errorf("partition column %s is not declared on table %s", pc, desc.Name)
		}
		partitionValues = append(partitionValues, valueOf[pc])
	}

	dataRow := make([]string, 0, len(desc.Columns))
	for _, col := range desc.Columns {
		if !desc.IsPartitionColumn(col.Name) {
			dataRow = append(dataRow, valueOf[col.Name])
		}
	}
	return partitionValues, dataRow, nil
}
