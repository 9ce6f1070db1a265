package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("# test"), 0644))
	}
}

func TestFindModuleFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"b.hcl",
		"a.hcl",
		"notes.txt",
		"annot-a.hcl",
		"common/types.hcl",
	)

	testCases := []struct {
		name     string
		opts     FindOptions
		expected []string
	}{
		{
			name:     "top level only, sorted",
			opts:     FindOptions{Extension: ".hcl"},
			expected: []string{"a.hcl", "annot-a.hcl", "b.hcl"},
		},
		{
			name:     "recursive",
			opts:     FindOptions{Extension: ".hcl", Recursive: true},
			expected: []string{"a.hcl", "annot-a.hcl", "b.hcl", "common/types.hcl"},
		},
		{
			name:     "prefix filter",
			opts:     FindOptions{Extension: ".hcl", Prefix: "annot-"},
			expected: []string{"annot-a.hcl"},
		},
		{
			name:     "exclude filter",
			opts:     FindOptions{Extension: ".hcl", Exclude: "annot-"},
			expected: []string{"a.hcl", "b.hcl"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			files, err := FindModuleFiles(root, tc.opts)
			require.NoError(t, err)

			var rel []string
			for _, f := range files {
				r, err := filepath.Rel(root, f)
				require.NoError(t, err)
				rel = append(rel, filepath.ToSlash(r))
			}
			assert.Equal(t, tc.expected, rel)
		})
	}
}

func TestFindModuleFiles_MissingRoot(t *testing.T) {
	files, err := FindModuleFiles(filepath.Join(t.TempDir(), "nope"), FindOptions{Extension: ".hcl"})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindModuleFiles_EmptyExtensionPanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = FindModuleFiles(t.TempDir(), FindOptions{})
	})
}
