package orgdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmptyDir(t *testing.T) {
	dir := t.TempDir()

	empty, err := IsEmptyDir(dir)
	require.NoError(t, err)
	assert.True(t, empty)

	writeFiles(t, dir, "a.txt")
	empty, err = IsEmptyDir(dir)
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestListFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.txt", "a.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	files, err := listFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, files)

	dirs, err := listDirs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"sub"}, dirs)
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	writeFiles(t, dir, "plain.txt")

	assert.NoError(t, ensureDir(dir))
	assert.ErrorIs(t, ensureDir(filepath.Join(dir, "missing")), ErrNotFound)
	assert.ErrorIs(t, ensureDir(file), ErrNotDirectory)
}

func TestPathResolver(t *testing.T) {
	r, err := NewPathResolver()
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x", r.Resolve("/tmp/x"))
	assert.Equal(t, filepath.Join(wd, "rel"), r.Resolve("rel"))
}
