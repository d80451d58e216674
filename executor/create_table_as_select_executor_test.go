package executor_test

import (
	"testing"

	"hotarudb/catalog"
	"hotarudb/executor"
	"hotarudb/planner"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMetastore records every call so the tests can assert the exact
// sequence the orchestrator makes against the catalog.
type fakeMetastore struct {
	relations map[string]catalog.Relation
	existsErr error

	createCalls []string
	lookupCalls []string
	dropCalls   []string
	existsCalls []string
}

func newFakeMetastore() *fakeMetastore {
	return &fakeMetastore{
		relations: make(map[string]catalog.Relation),
	}
}

func (m *fakeMetastore) Exists(name string) (bool, error) {
	m.existsCalls = append(m.existsCalls, name)
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.relations[name]
	return ok, nil
}

func (m *fakeMetastore) CreateTable(desc *catalog.TableDescriptor, ignoreIfExists bool) error {
	m.createCalls = append(m.createCalls, desc.Name)
	if _, ok := m.relations[desc.Name]; ok {
		if ignoreIfExists {
			return nil
		}
		return errors.Wrapf(catalog.TableAlreadyExistsError, "%s", desc.Name)
	}
	m.relations[desc.Name] = &catalog.Table{Descriptor: desc, Location: "/tmp/" + desc.Name}
	return nil
}

func (m *fakeMetastore) Lookup(name string) (catalog.Relation, error) {
	m.lookupCalls = append(m.lookupCalls, name)
	rel, ok := m.relations[name]
	if !ok {
		return nil, errors.Wrapf(catalog.TableNotFoundError, "%s", name)
	}
	return rel, nil
}

func (m *fakeMetastore) DropTable(name string, ignoreIfNotExists bool, purge bool) error {
	m.dropCalls = append(m.dropCalls, name)
	if _, ok := m.relations[name]; !ok {
		if ignoreIfNotExists {
			return nil
		}
		return errors.Wrapf(catalog.TableNotFoundError, "%s", name)
	}
	delete(m.relations, name)
	return nil
}

type insertCall struct {
	target    string
	overwrite bool
}

type fakeEngine struct {
	failWith error
	calls    []insertCall
}

func (e *fakeEngine) ExecuteInsert(target *catalog.Table, partitionSpec map[string]string, plan planner.Plan, overwrite bool, ifNotExists bool) (int, error) {
	e.calls = append(e.calls, insertCall{
		target:    target.Descriptor.Name,
		overwrite: overwrite,
	})
	if e.failWith != nil {
		return 0, e.failWith
	}
	return 3, nil
}

func sourcePlan(columnNames ...string) planner.RowPlan {
	schema := make(catalog.ColumnSchemas, 0, len(columnNames))
	for _, name := range columnNames {
		schema = append(schema, catalog.ColumnSchema{Name: name, Type: catalog.String})
	}
	return &planner.SeqScanPlan{
		TableName:   "src",
		ColumnNames: columnNames,
		Schema:      schema,
	}
}

func ctasPlan(ignoreIfExists bool, columnNames ...string) planner.CreateTableAsSelectPlan {
	schema := make(catalog.ColumnSchemas, 0, len(columnNames))
	for _, name := range columnNames {
		schema = append(schema, catalog.ColumnSchema{Name: name, Type: catalog.String})
	}
	return planner.CreateTableAsSelectPlan{
		Descriptor: &catalog.TableDescriptor{
			Name:    "report",
			Columns: schema,
		},
		Query:          sourcePlan(columnNames...),
		IgnoreIfExists: ignoreIfExists,
	}
}

func TestCreateTableAsSelectSuccess(t *testing.T) {
	ms := newFakeMetastore()
	engine := &fakeEngine{}
	ex := executor.NewCreateTableAsSelectExecutor(ms, engine)

	rs, err := ex.Execute(ctasPlan(false, "id", "name"))
	require.NoError(t, err)

	// Empty result set: the command signals completion, it returns no data.
	assert.Empty(t, rs.Header)
	assert.Empty(t, rs.Rows)

	assert.Equal(t, []string{"report"}, ms.createCalls)
	require.Len(t, engine.calls, 1)
	assert.Equal(t, "report", engine.calls[0].target)
	assert.True(t, engine.calls[0].overwrite)
	assert.Contains(t, ms.relations, "report")
	assert.Empty(t, ms.dropCalls)
}

func TestCreateTableAsSelectInsertFailureRollsBack(t *testing.T) {
	ms := newFakeMetastore()
	insertErr := errors.New("engine: write failed")
	engine := &fakeEngine{failWith: insertErr}
	ex := executor.NewCreateTableAsSelectExecutor(ms, engine)

	_, err := ex.Execute(ctasPlan(false, "id", "name"))

	// The original engine error comes back unchanged.
	require.Error(t, err)
	assert.Equal(t, insertErr, err)

	assert.Equal(t, []string{"report"}, ms.createCalls)
	assert.Len(t, engine.calls, 1)
	assert.Equal(t, []string{"report"}, ms.dropCalls)
	assert.NotContains(t, ms.relations, "report")
}

func TestCreateTableAsSelectExistenceCheckFailure(t *testing.T) {
	ms := newFakeMetastore()
	ms.existsErr = errors.New("metastore: permission denied")
	engine := &fakeEngine{}
	ex := executor.NewCreateTableAsSelectExecutor(ms, engine)

	_, err := ex.Execute(ctasPlan(false, "id", "name"))

	// A failing existence check stops the command before anything mutates.
	require.Error(t, err)
	assert.Equal(t, ms.existsErr, err)
	assert.Empty(t, ms.createCalls)
	assert.Empty(t, ms.dropCalls)
	assert.Empty(t, engine.calls)
}

func TestCreateTableAsSelectExistsWithIgnore(t *testing.T) {
	ms := newFakeMetastore()
	require.NoError(t, ms.CreateTable(&catalog.TableDescriptor{Name: "report"}, false))
	ms.createCalls = nil
	engine := &fakeEngine{}
	ex := executor.NewCreateTableAsSelectExecutor(ms, engine)

	rs, err := ex.Execute(ctasPlan(true, "id", "name"))
	require.NoError(t, err)
	assert.Empty(t, rs.Rows)

	// Nothing beyond the existence check.
	assert.Empty(t, ms.createCalls)
	assert.Empty(t, ms.lookupCalls)
	assert.Empty(t, ms.dropCalls)
	assert.Empty(t, engine.calls)
}

func TestCreateTableAsSelectExistsStrict(t *testing.T) {
	ms := newFakeMetastore()
	require.NoError(t, ms.CreateTable(&catalog.TableDescriptor{Name: "report"}, false))
	ms.createCalls = nil
	engine := &fakeEngine{}
	ex := executor.NewCreateTableAsSelectExecutor(ms, engine)

	_, err := ex.Execute(ctasPlan(false, "id", "name"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.TableAlreadyExistsError))
	assert.Contains(t, err.Error(), "report")
	assert.Empty(t, ms.createCalls)
	assert.Empty(t, engine.calls)
}

func TestCreateTableAsSelectIdempotentWithIgnore(t *testing.T) {
	ms := newFakeMetastore()
	engine := &fakeEngine{}
	ex := executor.NewCreateTableAsSelectExecutor(ms, engine)

	_, err := ex.Execute(ctasPlan(true, "id", "name"))
	require.NoError(t, err)
	_, err = ex.Execute(ctasPlan(true, "id", "name"))
	require.NoError(t, err)

	// The second invocation neither errors nor duplicates anything.
	assert.Equal(t, []string{"report"}, ms.createCalls)
	assert.Len(t, engine.calls, 1)
}

func TestCreateTableAsSelectSchemaMismatchBeforeAnyMutation(t *testing.T) {
	ms := newFakeMetastore()
	engine := &fakeEngine{}
	ex := executor.NewCreateTableAsSelectExecutor(ms, engine)

	pl := ctasPlan(false, "id", "name")
	pl.Descriptor.Columns = append(pl.Descriptor.Columns, catalog.ColumnSchema{Name: "ds", Type: catalog.String})
	pl.Descriptor.PartitionColumns = []string{"ds"}

	_, err := ex.Execute(pl)

	require.Error(t, err)
	assert.True(t, errors.Is(err, planner.SchemaMismatchError))
	assert.Empty(t, ms.createCalls)
	assert.Empty(t, ms.dropCalls)
	assert.Empty(t, engine.calls)
}

func TestCreateTableAsSelectUnexpectedRelationShape(t *testing.T) {
	ms := newFakeMetastore()
	engine := &fakeEngine{}
	ex := executor.NewCreateTableAsSelectExecutor(&viewReturningMetastore{ms}, engine)

	_, err := ex.Execute(ctasPlan(false, "id", "name"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.UnexpectedCatalogStateError))
	assert.Empty(t, engine.calls)
}

// viewReturningMetastore resolves every lookup to a view, simulating a
// catalog whose post-registration lookup does not yield a plain table.
type viewReturningMetastore struct {
	*fakeMetastore
}

func (m *viewReturningMetastore) Lookup(name string) (catalog.Relation, error) {
	return &catalog.View{Name: name, Query: "select 1"}, nil
}

func TestCreateTableAsSelectFillsStorageDefaults(t *testing.T) {
	ms := newFakeMetastore()
	engine := &fakeEngine{}
	ex := executor.NewCreateTableAsSelectExecutor(ms, engine)

	pl := ctasPlan(false, "id", "name")
	pl.Descriptor.Storage.InputFormat = "custom"
	pl.Descriptor.Storage.Compressed = true

	_, err := ex.Execute(pl)
	require.NoError(t, err)

	storage := pl.Descriptor.Storage
	assert.Equal(t, "custom", storage.InputFormat)
	assert.Equal(t, catalog.FormatTextOutput, storage.OutputFormat)
	assert.Equal(t, catalog.SerdeDelimited, storage.Serde)
	assert.True(t, storage.Compressed)
}

func TestCreateTableAsSelectInfersColumnsFromQuery(t *testing.T) {
	ms := newFakeMetastore()
	engine := &fakeEngine{}
	ex := executor.NewCreateTableAsSelectExecutor(ms, engine)

	pl := planner.CreateTableAsSelectPlan{
		Descriptor: &catalog.TableDescriptor{Name: "report"},
		Query:      sourcePlan("id", "name"),
	}

	_, err := ex.Execute(pl)
	require.NoError(t, err)

	rel, err := ms.Lookup("report")
	require.NoError(t, err)
	table := rel.(*catalog.Table)
	assert.Equal(t, []string{"id", "name"}, table.Descriptor.Columns.Names())
}
