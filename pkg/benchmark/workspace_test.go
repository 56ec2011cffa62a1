package benchmark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireWorkspace_RemovesStaleDirectory(t *testing.T) {
	root := t.TempDir()
	stale := filepath.Join(root, "test_pip_run1")

	require.NoError(t, os.MkdirAll(stale, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(stale, "leftover"), []byte("x"), 0644))

	dir, release, err := acquireWorkspace(root, "test_pip_run1")
	require.NoError(t, err)
	defer release()

	assert.Equal(t, stale, dir)

	// The stale contents are gone.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAcquireWorkspace_ReleaseRemoves(t *testing.T) {
	root := t.TempDir()

	dir, release, err := acquireWorkspace(root, "test_uv_run1")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uv.lock"), []byte("x"), 0644))

	release()

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestFileSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lock")

	assert.Equal(t, int64(0), fileSize(path))

	require.NoError(t, os.WriteFile(path, []byte("12345"), 0644))
	assert.Equal(t, int64(5), fileSize(path))
}
