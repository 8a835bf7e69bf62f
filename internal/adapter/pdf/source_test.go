package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"hospital-pdf-manager/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSource_Resolve(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arat.pdf"), []byte("%PDF-1.4"), 0o644))

	s := NewDirSource(dir)

	data, err := s.Resolve("arat.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestDirSource_NotFound(t *testing.T) {
	s := NewDirSource(t.TempDir())

	_, err := s.Resolve("missing.pdf")
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDirSource_StripsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nhpt.pdf"), []byte("x"), 0o644))

	s := NewDirSource(dir)

	// Only the base name is honored.
	data, err := s.Resolve("../../nhpt.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)

	_, err = s.Resolve("..")
	assert.Error(t, err)
}
