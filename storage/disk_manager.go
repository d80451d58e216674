package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskManager owns the data directory layout: one directory per table,
// Hive-style col=value subdirectories per partition, and dot-prefixed
// staging directories for in-flight overwrites.
type DiskManager struct {
	BasePath string
}

func NewDiskManager(basePath string) *DiskManager {
	return &DiskManager{
		BasePath: basePath,
	}
}

// NewStagingDir creates a fresh staging directory next to the table
// directories. Rows written there are invisible until CommitOverwrite.
func (d *DiskManager) NewStagingDir() (string, error) {
	dir := filepath.Join(d.BasePath, fmt.Sprintf(".staging-%s", uuid.NewString()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// CommitOverwrite replaces whatever is at location with the staged
// contents. Existing data files are removed, not appended to. The old
// directory is renamed aside before the staged one moves in, so a crash
// between the two steps leaves the previous data recoverable instead of
// gone. The dot prefix keeps the aside directory invisible to scans.
func (d *DiskManager) CommitOverwrite(stagingDir string, location string) error {
	if err := os.MkdirAll(filepath.Dir(location), 0755); err != nil {
		return err
	}

	asideDir := ""
	if _, err := os.Stat(location); err == nil {
		asideDir = filepath.Join(filepath.Dir(location),
			fmt.Sprintf(".old-%s-%s", filepath.Base(location), uuid.NewString()))
		if err := os.Rename(location, asideDir); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := os.Rename(stagingDir, location); err != nil {
		if asideDir != "" {
			_ = os.Rename(asideDir, location)
		}
		return err
	}

	if asideDir != "" {
		return os.RemoveAll(asideDir)
	}
	return nil
}

func (d *DiskManager) DiscardStaging(stagingDir string) error {
	return os.RemoveAll(stagingDir)
}

// DataFile is one physical file plus the partition values encoded in its
// directory path.
type DataFile struct {
	Path      string
	Partition map[string]string
}

// ListDataFiles walks a table directory and returns every data file with
// its partition values. A missing directory is an empty table.
func (d *DiskManager) ListDataFiles(location string) ([]DataFile, error) {
	if _, err := os.Stat(location); os.IsNotExist(err) {
		return nil, nil
	}

	files := make([]DataFile, 0)
	err := filepath.Walk(location, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != location {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(location, path)
		if err != nil {
			return err
		}
		files = append(files, DataFile{
			Path:      path,
			Partition: parsePartitionPath(filepath.Dir(rel)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// PartitionPath maps partition column values onto a col=value directory
// chain, in declaration order.
func PartitionPath(root string, columns []string, values []string) string {
	dir := root
	for i, col := range columns {
		dir = filepath.Join(dir, fmt.Sprintf("%s=%s", col, values[i]))
	}
	return dir
}

func parsePartitionPath(rel string) map[string]string {
	partition := make(map[string]string)
	if rel == "." || rel == "" {
		return partition
	}
	for _, segment := range strings.Split(rel, string(filepath.Separator)) {
		k, v, found := strings.Cut(segment, "=")
		if !found {
			continue
		}
		partition[k] = v
	}
	return partition
}

// NewDataFilePath returns a unique file name for a new data file in dir.
func NewDataFilePath(dir string, compressed bool) string {
	name := fmt.Sprintf("part-%s", uuid.NewString())
	if compressed {
		name += ".gz"
	}
	return filepath.Join(dir, name)
}
