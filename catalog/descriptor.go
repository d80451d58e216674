package catalog

const (
	// Fallback storage properties used when a table is declared without any.
	FormatTextInput  = "text"
	FormatTextOutput = "text"
	SerdeDelimited   = "delimited"

	DefaultFieldDelimiter = "\t"
)

// TableDescriptor is the declared shape of a table: its identifier, ordered
// columns (partition columns last), and physical storage properties.
type TableDescriptor struct {
	Name             string
	Columns          ColumnSchemas
	PartitionColumns []string
	Storage          StorageDescriptor
}

type StorageDescriptor struct {
	InputFormat    string
	OutputFormat   string
	Serde          string
	FieldDelimiter string
	Compressed     bool
}

// FillDefaults substitutes the text/delimited fallbacks for unset storage
// properties. Explicit values are never overwritten; Compressed passes
// through unchanged.
func (s *StorageDescriptor) FillDefaults() {
	if s.InputFormat == "" {
		s.InputFormat = FormatTextInput
	}
	if s.OutputFormat == "" {
		s.OutputFormat = FormatTextOutput
	}
	if s.Serde == "" {
		s.Serde = SerdeDelimited
	}
	if s.FieldDelimiter == "" {
		s.FieldDelimiter = DefaultFieldDelimiter
	}
}

// DataColumns returns the columns that are stored in data files, i.e. the
// declared columns minus the partition columns (those live in the directory
// layout instead).
func (d *TableDescriptor) DataColumns() ColumnSchemas {
	if len(d.PartitionColumns) == 0 {
		return d.Columns
	}
	columns := make(ColumnSchemas, 0, len(d.Columns))
	for _, col := range d.Columns {
		if !d.IsPartitionColumn(col.Name) {
			columns = append(columns, col)
		}
	}
	return columns
}

func (d *TableDescriptor) IsPartitionColumn(name string) bool {
	for _, pc := range d.PartitionColumns {
		if pc == name {
			return true
		}
	}
	return false
}

type ColumnSchemas []ColumnSchema

func (c ColumnSchemas) Contains(name string) (uint64, bool) {
	for i, cs := range c {
		if cs.Name == name {
			return uint64(i), true
		}
	}
	return 0, false
}

func (c ColumnSchemas) Names() []string {
	names := make([]string, 0, len(c))
	for _, cs := range c {
		names = append(names, cs.Name)
	}
	return names
}

type ColumnSchema struct {
	Name string
	Type ColumnType
}

type ColumnType uint8

const (
	Unknown ColumnType = iota
	String
)
