package executor

import (
	"hotarudb/catalog"
	"hotarudb/planner"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// CreateTableAsSelectExecutor registers a table definition and populates
// it from a query as one logical step. If the populating insert fails, the
// just-created definition is dropped again so no empty table is left
// behind. Only error values trigger that compensation; panics are not
// recovered and propagate past it.
type CreateTableAsSelectExecutor struct {
	metastore Metastore
	engine    InsertEngine
}

func NewCreateTableAsSelectExecutor(metastore Metastore, engine InsertEngine) *CreateTableAsSelectExecutor {
	return &CreateTableAsSelectExecutor{
		metastore: metastore,
		engine:    engine,
	}
}

func (e *CreateTableAsSelectExecutor) Execute(pl planner.CreateTableAsSelectPlan) (*ResultSet, error) {
	tableName := pl.Descriptor.Name

	exists, err := e.metastore.Exists(tableName)
	if err != nil {
		return nil, err
	}
	if exists {
		if pl.IgnoreIfExists {
			log.Debugf("table %s already exists, create skipped", tableName)
			return &ResultSet{}, nil
		}
		return nil, errors.Wrapf(catalog.TableAlreadyExistsError, "%s", tableName)
	}

	// Reorder the query output to the declared column order before anything
	// is registered: a schema mismatch must surface before any mutation.
	reconciled, err := planner.Reconcile(pl.Descriptor.Columns, pl.Query)
	if err != nil {
		return nil, err
	}

	table, err := e.materializeTable(pl.Descriptor, reconciled)
	if err != nil {
		// Nothing was registered, nothing to roll back.
		return nil, err
	}

	// TODO: ideally the data would be written before the catalog entry
	// becomes visible, so readers can not observe an empty table while the
	// insert is still running. That needs a conditional-create primitive on
	// the catalog side.
	if _, err := e.engine.ExecuteInsert(table, nil, reconciled, true, false); err != nil {
		log.Warnf("populating %s failed, dropping the created definition: %v", tableName, err)
		if dropErr := e.metastore.DropTable(tableName, true, false); dropErr != nil {
			log.Errorf("rollback drop of %s failed: %v", tableName, dropErr)
		}
		// The caller sees the original insert failure, not the rollback.
		return nil, err
	}

	log.Debugf("created and populated table %s", tableName)

	return &ResultSet{}, nil
}

// materializeTable fills in unset storage defaults, takes the table shape
// from the query when none was declared, registers the table, and resolves
// it back into a writable handle. Registration is strict here: the
// existence policy was already applied by Execute.
func (e *CreateTableAsSelectExecutor) materializeTable(desc *catalog.TableDescriptor, reconciled *planner.ProjectionPlan) (*catalog.Table, error) {
	desc.Storage.FillDefaults()
	if len(desc.Columns) == 0 {
		desc.Columns = reconciled.OutputSchema()
	}

	if err := e.metastore.CreateTable(desc, false); err != nil {
		return nil, err
	}

	relation, err := e.metastore.Lookup(desc.Name)
	if err != nil {
		return nil, err
	}
	table, ok := relation.(*catalog.Table)
	if !ok {
		return nil, errors.Wrapf(catalog.UnexpectedCatalogStateError,
			"%s resolved to a %s right after registration, expected a table", desc.Name, relation.Kind())
	}
	return table, nil
}
