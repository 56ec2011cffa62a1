package benchmark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePoetryManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writePoetryManifest(dir))

	var m poetryManifest

	_, err := toml.DecodeFile(filepath.Join(dir, manifestName), &m)
	require.NoError(t, err)

	assert.Equal(t, "benchmark", m.Tool.Poetry.Name)
	assert.Equal(t, "0.1.0", m.Tool.Poetry.Version)
	assert.Equal(t, "^3.10", m.Tool.Poetry.Dependencies["python"])
}

func TestWriteUVManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeUVManifest(dir))

	var m uvManifest

	_, err := toml.DecodeFile(filepath.Join(dir, manifestName), &m)
	require.NoError(t, err)

	assert.Equal(t, "benchmark", m.Project.Name)
	assert.Equal(t, ">=3.10", m.Project.RequiresPython)
	assert.Empty(t, m.Project.Dependencies)

	// uv expects an explicit empty dependency list in the manifest.
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "dependencies = []")
}
