package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[modules]
dir         = "models"
search_path = ["/opt/models", "vendor"]

[annotations]
prefix = "acme-annot-"

[output]
text     = "-"
markdown = "docs/tree.md"

[log]
level   = "debug"
verbose = true

[diagnostics]
colour = "on"
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, f.Path)
	assert.Equal(t, filepath.Join(dir, "models"), f.Modules.Dir)
	assert.Equal(t, []string{"/opt/models", filepath.Join(dir, "vendor")}, f.Modules.SearchPath)
	assert.Equal(t, "acme-annot-", f.Annotations.Prefix)
	assert.Equal(t, "-", f.Output.Text)
	assert.Equal(t, filepath.Join(dir, "docs", "tree.md"), f.Output.Markdown)
	assert.Empty(t, f.Output.HTML)
	assert.Equal(t, "debug", f.Log.Level)
	assert.True(t, f.Log.Verbose)
	assert.Equal(t, []string{"diagnostics.colour"}, f.Undecoded)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[modules\ndir = 1"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(""), 0644))

	path, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, FileName), path)
}

func TestFind_NotFound(t *testing.T) {
	// The temp dir hierarchy is not expected to contain a project file.
	_, ok, err := Find(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
}
