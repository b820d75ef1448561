package formulalib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Dir_Resolve_found(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deadlock-free.mcf"), []byte("[true]true"), 0o644))

	src, err := Open(dir).Resolve("deadlock-free")
	require.NoError(t, err)
	assert.Equal(t, "[true]true", src)
}

func Test_Dir_Resolve_missing(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(dir).Resolve("nonexistent")
	assert.Error(t, err)
}

func Test_Dir_Resolve_rejectsPathSeparators(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(dir).Resolve("../escape")
	assert.Error(t, err)
}

func Test_Dir_List_onlyMcfFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mcf"), []byte("true"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mcf"), []byte("true"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	names, err := Open(dir).List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}

func Test_Dir_List_missingDirIsEmptyNotError(t *testing.T) {
	names, err := Open(filepath.Join(t.TempDir(), "does-not-exist")).List()
	require.NoError(t, err)
	assert.Empty(t, names)
}
