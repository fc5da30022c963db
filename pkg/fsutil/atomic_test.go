package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcexcerpt/pkg/fsutil"
)

// listDir returns the names in dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestAtomicFile_Commit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	file, err := fsutil.CreateAtomic(path, 0)
	require.NoError(t, err)
	assert.Equal(t, path, file.Path())

	_, err = file.Write([]byte("new "))
	require.NoError(t, err)
	_, err = file.Write([]byte("content"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got), "target is untouched before commit")

	require.NoError(t, file.Commit())

	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
	assert.Equal(t, []string{"out.txt"}, listDir(t, dir))
}

func TestAtomicFile_Abort(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	file, err := fsutil.CreateAtomic(path, 0o600)
	require.NoError(t, err)
	_, err = file.Write([]byte("discarded"))
	require.NoError(t, err)

	file.Abort()
	file.Abort()

	assert.NoFileExists(t, path)
	assert.Empty(t, listDir(t, dir))
}

func TestAtomicFile_Closed(t *testing.T) {
	t.Parallel()

	file, err := fsutil.CreateAtomic(filepath.Join(t.TempDir(), "out.txt"), 0)
	require.NoError(t, err)
	require.NoError(t, file.Commit())

	_, err = file.Write([]byte("late"))
	require.ErrorIs(t, err, fsutil.ErrClosed)
	require.ErrorIs(t, file.Commit(), fsutil.ErrClosed)
	file.Abort()
}

func TestCreateAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := fsutil.CreateAtomic(filepath.Join(t.TempDir(), "missing", "out.txt"), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
