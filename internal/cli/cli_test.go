package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/schematree/internal/app"
)

// inTempDir runs the test from an empty directory so no project file is found.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func TestParse_Defaults(t *testing.T) {
	inTempDir(t)
	t.Setenv(EnvModuleDir, "")

	cfg, exit, err := Parse(nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "models", cfg.ModuleDir)
	assert.Equal(t, filepath.Join("models", "annotations"), cfg.AnnotDir)
	assert.Equal(t, "annot-", cfg.AnnotPrefix)
	assert.Equal(t, app.Outputs{Text: "-"}, cfg.Outputs)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.ModuleFiles)
}

func TestParse_EnvModuleDir(t *testing.T) {
	inTempDir(t)
	t.Setenv(EnvModuleDir, "/srv/models")

	cfg, _, err := Parse(nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "/srv/models", cfg.ModuleDir)

	cfg, _, err = Parse([]string{"-d", "local"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.ModuleDir, "the flag wins over the environment")
}

func TestParse_Flags(t *testing.T) {
	inTempDir(t)

	cfg, exit, err := Parse([]string{
		"--html", "tree.html",
		"--markdown", "-",
		"--annot-file", "a.hcl", "--annot-file", "b.hcl",
		"-p", "/opt/one", "-p", "/opt/two",
		"--base-dir", "/srv/base",
		"-v",
		"--color", "off",
		"--diagnostics", "pretty",
		"x.hcl", "y.hcl",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, app.Outputs{HTML: "tree.html", Markdown: "-"}, cfg.Outputs)
	assert.Equal(t, []string{"a.hcl", "b.hcl"}, cfg.AnnotFiles)
	assert.Equal(t, []string{"/opt/one", "/opt/two"}, cfg.SearchPaths)
	assert.Equal(t, "/srv/base", cfg.BaseDir)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "off", cfg.Color)
	assert.Equal(t, "pretty", cfg.DiagnosticsFormat)
	assert.Equal(t, []string{"x.hcl", "y.hcl"}, cfg.ModuleFiles)
}

func TestParse_ProjectFile(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schematree.toml"), []byte(`
[modules]
dir = "schemas"

[output]
markdown = "docs/tree.md"

[log]
level = "debug"
`), 0644))

	cfg, _, err := Parse(nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "schemas"), cfg.ModuleDir)
	assert.Equal(t, app.Outputs{Markdown: filepath.Join(dir, "docs", "tree.md")}, cfg.Outputs)
	assert.Equal(t, "debug", cfg.LogLevel)

	cfg, _, err = Parse([]string{"--text", "-", "--log-level", "error"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, app.Outputs{Text: "-"}, cfg.Outputs, "format flags replace the file's outputs")
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestParse_ExplicitConfigMissing(t *testing.T) {
	dir := inTempDir(t)

	_, _, err := Parse([]string{"--config", filepath.Join(dir, "nope.toml")}, &bytes.Buffer{})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitUsageError, exitErr.Code)
}

func TestParse_Help(t *testing.T) {
	inTempDir(t)
	out := &bytes.Buffer{}

	cfg, exit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "--annot-prefix")
}

func TestParse_UsageErrors(t *testing.T) {
	inTempDir(t)

	testCases := []struct {
		name string
		args []string
		msg  string
	}{
		{name: "unknown flag", args: []string{"--bogus"}, msg: "unknown flag: --bogus"},
		{name: "bad log level", args: []string{"--log-level", "chatty"}, msg: "invalid log level"},
		{name: "bad color", args: []string{"--color", "pink"}, msg: "invalid color mode"},
		{name: "same file twice", args: []string{"--text", "t", "--html", "t"}, msg: "both write to"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, ExitUsageError, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.msg)
		})
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
