package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"hotarudb/catalog"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	base := t.TempDir()
	ct, err := catalog.LoadCatalog(filepath.Join(base, "catalog"), filepath.Join(base, "tables"))
	require.NoError(t, err)
	return ct
}

func usersDescriptor() *catalog.TableDescriptor {
	return &catalog.TableDescriptor{
		Name: "users",
		Columns: catalog.ColumnSchemas{
			{Name: "id", Type: catalog.String},
			{Name: "name", Type: catalog.String},
		},
		Storage: catalog.StorageDescriptor{
			InputFormat:    catalog.FormatTextInput,
			OutputFormat:   catalog.FormatTextOutput,
			Serde:          catalog.SerdeDelimited,
			FieldDelimiter: "\t",
		},
	}
}

func TestCreateAndLookupTable(t *testing.T) {
	ct := newCatalog(t)

	exists, err := ct.Exists("users")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, ct.CreateTable(usersDescriptor(), false))

	exists, err = ct.Exists("users")
	require.NoError(t, err)
	assert.True(t, exists)

	rel, err := ct.Lookup("users")
	require.NoError(t, err)
	table, ok := rel.(*catalog.Table)
	require.True(t, ok)
	assert.Equal(t, "users", table.RelationName())
	assert.Equal(t, []string{"id", "name"}, table.Descriptor.Columns.Names())
	assert.Equal(t, ct.TableLocation("users"), table.Location)
}

func TestCreateTableStrictFailsWhenExists(t *testing.T) {
	ct := newCatalog(t)
	require.NoError(t, ct.CreateTable(usersDescriptor(), false))

	err := ct.CreateTable(usersDescriptor(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.TableAlreadyExistsError))
}

func TestCreateTableIgnoreIfExists(t *testing.T) {
	ct := newCatalog(t)
	require.NoError(t, ct.CreateTable(usersDescriptor(), false))
	assert.NoError(t, ct.CreateTable(usersDescriptor(), true))
}

func TestLookupMissingTable(t *testing.T) {
	ct := newCatalog(t)

	_, err := ct.Lookup("nothing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.TableNotFoundError))
}

func TestDropTable(t *testing.T) {
	ct := newCatalog(t)
	require.NoError(t, ct.CreateTable(usersDescriptor(), false))

	require.NoError(t, ct.DropTable("users", false, false))
	exists, err := ct.Exists("users")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExistsReportsStatFailure(t *testing.T) {
	base := t.TempDir()
	catalogDir := filepath.Join(base, "catalog")
	ct, err := catalog.LoadCatalog(catalogDir, filepath.Join(base, "tables"))
	require.NoError(t, err)

	// Replace the catalog directory with a plain file so stat fails with
	// something other than "not exist". That must not read as absence.
	require.NoError(t, os.Remove(catalogDir))
	require.NoError(t, os.WriteFile(catalogDir, []byte{}, 0644))

	_, err = ct.Exists("users")
	assert.Error(t, err)
}

func TestDropMissingTable(t *testing.T) {
	ct := newCatalog(t)

	assert.NoError(t, ct.DropTable("users", true, false))

	err := ct.DropTable("users", false, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.TableNotFoundError))
}

func TestDropTableWithPurge(t *testing.T) {
	ct := newCatalog(t)
	require.NoError(t, ct.CreateTable(usersDescriptor(), false))

	location := ct.TableLocation("users")
	require.NoError(t, os.MkdirAll(location, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(location, "part-0"), []byte("1\talice\n"), 0644))

	require.NoError(t, ct.DropTable("users", false, true))
	_, err := os.Stat(location)
	assert.True(t, os.IsNotExist(err))
}

func TestLookupView(t *testing.T) {
	ct := newCatalog(t)
	require.NoError(t, ct.CreateView("active_users", "select * from users"))

	rel, err := ct.Lookup("active_users")
	require.NoError(t, err)
	assert.Equal(t, catalog.RelationView, rel.Kind())

	_, err = ct.LookupTable("active_users")
	require.Error(t, err)
}

func TestFillDefaultsKeepsExplicitValues(t *testing.T) {
	storage := catalog.StorageDescriptor{
		InputFormat: "custom",
		Compressed:  true,
	}
	storage.FillDefaults()

	assert.Equal(t, "custom", storage.InputFormat)
	assert.Equal(t, catalog.FormatTextOutput, storage.OutputFormat)
	assert.Equal(t, catalog.SerdeDelimited, storage.Serde)
	assert.Equal(t, catalog.DefaultFieldDelimiter, storage.FieldDelimiter)
	assert.True(t, storage.Compressed)
}
