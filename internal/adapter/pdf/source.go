package pdf

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"hospital-pdf-manager/pkg/apperror"
)

// DirSource implements ports.SourceResolver over a directory of PDFs.
type DirSource struct {
	dir string
}

// NewDirSource creates a resolver reading documents from dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Resolve reads the named document from the source directory.
// Identifiers are plain file names; path traversal is rejected.
func (s *DirSource) Resolve(id string) ([]byte, error) {
	name := filepath.Base(strings.TrimSpace(id))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return nil, apperror.ErrSourceNotFound(id)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperror.ErrSourceNotFound(name)
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, apperror.ErrPermissionDenied(name, err)
		}
		return nil, apperror.InternalError(err)
	}
	return data, nil
}
