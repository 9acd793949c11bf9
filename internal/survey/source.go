package survey

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SourceFile identifies one discoverable export.
type SourceFile struct {
	// Name is the bare filename the period label derives from.
	Name string
}

// Source abstracts where raw exports come from, so tests can supply
// in-memory fixtures instead of a real directory.
type Source interface {
	// List enumerates the files recognized as retrospective exports.
	List() ([]SourceFile, error)
	// Open returns the raw bytes of a listed file.
	Open(name string) (io.ReadCloser, error)
}

// DirSource discovers exports in a directory: any regular file whose
// name contains the marker substring and carries an .xlsx extension.
type DirSource struct {
	dir    string
	marker string
}

// NewDirSource creates a directory-backed source.
func NewDirSource(dir, marker string) *DirSource {
	return &DirSource{dir: dir, marker: marker}
}

// List implements Source.
func (s *DirSource) List() ([]SourceFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", s.dir, err)
	}

	var files []SourceFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.Contains(name, s.marker) {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
			continue
		}
		files = append(files, SourceFile{Name: name})
	}

	return files, nil
}

// Open implements Source.
func (s *DirSource) Open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, name))
}
