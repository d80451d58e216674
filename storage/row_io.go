package storage

import (
	"bufio"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// RowWriter writes rows as delimiter-joined lines into a single data file,
// optionally gzip-compressed.
type RowWriter struct {
	file     *os.File
	gz       *gzip.Writer
	buf      *bufio.Writer
	delim    string
	RowCount int
}

func NewRowWriter(dir string, delimiter string, compressed bool) (*RowWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	f, err := os.Create(NewDataFilePath(dir, compressed))
	if err != nil {
		return nil, err
	}

	w := &RowWriter{
		file:  f,
		delim: delimiter,
	}
	if compressed {
		w.gz = gzip.NewWriter(f)
		w.buf = bufio.NewWriter(w.gz)
	} else {
		w.buf = bufio.NewWriter(f)
	}
	return w, nil
}

// Write appends one row as one line. Values must not contain the field
// delimiter or a line break: there is no escaping on this format, so such
// a value would read back as a different row shape.
func (w *RowWriter) Write(row []string) error {
	for _, value := range row {
		if strings.Contains(value, w.delim) {
			return errors.Errorf("value %q contains the field delimiter %q", value, w.delim)
		}
		if strings.ContainsAny(value, "\r\n") {
			return errors.Errorf("value %q contains a line break", value)
		}
	}
	if _, err := w.buf.WriteString(strings.Join(row, w.delim)); err != nil {
		return err
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return err
	}
	w.RowCount++
	return nil
}

func (w *RowWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}
	if w.gz != nil {
		if err := w.gz.Close(); err != nil {
			return err
		}
	}
	return w.file.Close()
}

// ReadRows reads one data file back into rows. Compression is detected
// from the file name written by NewDataFilePath.
func ReadRows(path string, delimiter string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var scanner *bufio.Scanner
	if filepath.Ext(path) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		scanner = bufio.NewScanner(gz)
	} else {
		scanner = bufio.NewScanner(f)
	}

	// Every line is a row. A blank line is a legitimate row for a
	// single-column table whose value is the empty string.
	rows := make([][]string, 0)
	for scanner.Scan() {
		rows = append(rows, strings.Split(scanner.Text(), delimiter))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
