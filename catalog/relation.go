package catalog

type RelationKind string

const (
	RelationTable RelationKind = "table"
	RelationView  RelationKind = "view"
)

// Relation is what a catalog lookup resolves an identifier to. Callers that
// need a writable table must type-assert to *Table; anything else means the
// identifier is bound to a different kind of object.
type Relation interface {
	RelationName() string
	Kind() RelationKind
}

// Table is the concrete, writable handle for a registered table: its
// descriptor plus the directory its data files live under.
type Table struct {
	Descriptor *TableDescriptor
	Location   string
}

func (t *Table) RelationName() string {
	return t.Descriptor.Name
}

func (t *Table) Kind() RelationKind {
	return RelationTable
}

// View is a named stored query. Views are registered through the catalog API
// only; the engine does not expand them during scans.
type View struct {
	Name  string
	Query string
}

func (v *View) RelationName() string {
	return v.Name
}

func (v *View) Kind() RelationKind {
	return RelationView
}
