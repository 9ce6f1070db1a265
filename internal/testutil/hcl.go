package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/schematree/internal/schema"
)

// WriteFiles writes files (relative name -> content) below a fresh temp dir
// and returns the dir.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// LoadModules writes files, loads the named ones in order into a new context,
// validates and prunes them. It fails the test on any error diagnostic, so
// the returned modules are ready to render.
func LoadModules(t *testing.T, files map[string]string, names ...string) (*schema.Context, []*schema.Module) {
	t.Helper()
	dir := WriteFiles(t, files)
	return LoadModulesFrom(t, dir, schema.Options{SearchPaths: []string{dir}}, names...)
}

// LoadModulesFrom is LoadModules for files that already exist below dir.
func LoadModulesFrom(t *testing.T, dir string, opts schema.Options, names ...string) (*schema.Context, []*schema.Module) {
	t.Helper()
	sctx := schema.NewContext(opts)
	var modules []*schema.Module
	for _, name := range names {
		m := sctx.Load(filepath.Join(dir, name))
		require.NotNil(t, m, "module %s did not load: %s", name, sctx.Diagnostics().Error())
		modules = append(modules, m)
	}

	sctx.Validate()
	RequireNoErrors(t, sctx.Diagnostics())
	for _, m := range modules {
		require.NoError(t, sctx.Prune(m))
	}
	return sctx, modules
}

// RequireNoErrors fails the test when diags contains an error.
func RequireNoErrors(t *testing.T, diags hcl.Diagnostics) {
	t.Helper()
	for _, d := range diags {
		require.NotEqual(t, hcl.DiagError, d.Severity, "unexpected error diagnostic: %s", d.Error())
	}
}
