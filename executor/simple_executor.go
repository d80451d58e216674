package executor

import (
	"hotarudb/catalog"
	"hotarudb/planner"
	"hotarudb/storage"

	"github.com/cockroachdb/errors"
)

type SimpleExecutor struct {
	catalog     *catalog.Catalog
	diskManager *storage.DiskManager
}

func NewSimpleExecutor(ct *catalog.Catalog, dm *storage.DiskManager) *SimpleExecutor {
	return &SimpleExecutor{
		catalog:     ct,
		diskManager: dm,
	}
}

func (e *SimpleExecutor) Execute(pl planner.Plan) (*ResultSet, error) {
	switch p := pl.(type) {
	case *planner.SeqScanPlan:
		return NewSeqScanExecutor(e.catalog, e.diskManager).Execute(*p)
	case *planner.InsertPlan:
		return NewInsertExecutor(e.catalog, e.diskManager).Execute(*p)
	case *planner.CreateTablePlan:
		return NewCreateTableExecutor(e.catalog).Execute(*p)
	case *planner.DropTablePlan:
		return NewDropTableExecutor(e.catalog).Execute(*p)
	case *planner.CreateTableAsSelectPlan:
		engine := NewLocalEngine(e.catalog, e.diskManager)
		return NewCreateTableAsSelectExecutor(e.catalog, engine).Execute(*p)
	default:
		return nil, errors.Errorf("not supported plan type: %T", p)
	}
}
