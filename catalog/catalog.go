package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

var TableNotFoundError = errors.New("table not found")
var TableAlreadyExistsError = errors.New("table already exists")
var UnexpectedCatalogStateError = errors.New("unexpected catalog state")

// Catalog is the metastore: it maps identifiers to relation records, one
// JSON file per relation under catalogDir. Data files live under dataDir
// and are only touched here when a drop requests purge.
type Catalog struct {
	catalogDir string
	dataDir    string
}

func LoadCatalog(catalogDir string, dataDir string) (*Catalog, error) {
	if err := os.MkdirAll(catalogDir, 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &Catalog{
		catalogDir: catalogDir,
		dataDir:    dataDir,
	}, nil
}

// relationRecord is the on-disk form of a catalog entry.
type relationRecord struct {
	Kind       RelationKind     `json:"kind"`
	Descriptor *TableDescriptor `json:"descriptor,omitempty"`
	Query      string           `json:"query,omitempty"`
}

func (c *Catalog) makeRelationFilePath(name string) string {
	return filepath.Join(c.catalogDir, fmt.Sprintf("%s.json", name))
}

// TableLocation returns the directory a table's data files live under.
func (c *Catalog) TableLocation(name string) string {
	return filepath.Join(c.dataDir, name)
}

// Exists reports whether the identifier is registered. Only a missing
// record file means "no"; any other stat failure is a real error the
// caller has to see.
func (c *Catalog) Exists(name string) (bool, error) {
	_, err := os.Stat(c.makeRelationFilePath(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// CreateTable registers a new table. Registration is strict unless
// ignoreIfExists is set: the descriptor file is created with O_EXCL, so a
// concurrent create of the same identifier fails cleanly here.
func (c *Catalog) CreateTable(desc *TableDescriptor, ignoreIfExists bool) error {
	b, err := json.Marshal(&relationRecord{
		Kind:       RelationTable,
		Descriptor: desc,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(c.makeRelationFilePath(desc.Name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if os.IsExist(err) {
		if ignoreIfExists {
			return nil
		}
		return errors.Wrapf(TableAlreadyExistsError, "%s", desc.Name)
	}
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(b); err != nil {
		return err
	}
	return nil
}

func (c *Catalog) CreateView(name string, query string) error {
	b, err := json.Marshal(&relationRecord{
		Kind:  RelationView,
		Query: query,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(c.makeRelationFilePath(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if os.IsExist(err) {
		return errors.Wrapf(TableAlreadyExistsError, "%s", name)
	}
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(b); err != nil {
		return err
	}
	return nil
}

func (c *Catalog) Lookup(name string) (Relation, error) {
	b, err := os.ReadFile(c.makeRelationFilePath(name))
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(TableNotFoundError, "%s", name)
	}
	if err != nil {
		return nil, err
	}

	var record relationRecord
	if err := json.Unmarshal(b, &record); err != nil {
		return nil, errors.Wrapf(UnexpectedCatalogStateError, "corrupt record for %s", name)
	}

	switch record.Kind {
	case RelationTable:
		if record.Descriptor == nil {
			return nil, errors.Wrapf(UnexpectedCatalogStateError, "table record without descriptor: %s", name)
		}
		return &Table{
			Descriptor: record.Descriptor,
			Location:   c.TableLocation(name),
		}, nil
	case RelationView:
		return &View{
			Name:  name,
			Query: record.Query,
		}, nil
	default:
		return nil, errors.Wrapf(UnexpectedCatalogStateError, "unknown relation kind %q for %s", record.Kind, name)
	}
}

// LookupTable resolves name and requires it to be a table. Scans use this;
// the materializer does its own shape assertion.
func (c *Catalog) LookupTable(name string) (*Table, error) {
	rel, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	table, ok := rel.(*Table)
	if !ok {
		return nil, errors.Wrapf(TableNotFoundError, "%s is a %s, not a table", name, rel.Kind())
	}
	return table, nil
}

// DropTable removes a table definition. With ignoreIfNotExists the drop of
// an already-absent table succeeds silently. With purge the data directory
// goes too; otherwise only the definition is removed.
func (c *Catalog) DropTable(name string, ignoreIfNotExists bool, purge bool) error {
	err := os.Remove(c.makeRelationFilePath(name))
	if os.IsNotExist(err) {
		if ignoreIfNotExists {
			return nil
		}
		return errors.Wrapf(TableNotFoundError, "%s", name)
	}
	if err != nil {
		return err
	}

	if purge {
		return os.RemoveAll(c.TableLocation(name))
	}
	return nil
}
