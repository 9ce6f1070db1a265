package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertNoTempFiles checks that no temporary output file was left in dir.
func AssertNoTempFiles(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t,
			strings.Contains(e.Name(), ".tmp-"),
			"stray temporary file %q found in %s", e.Name(), dir,
		)
	}
}

// ReadFile returns the content of path, failing the test when it is missing.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
