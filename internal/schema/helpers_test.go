package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/require"
)

// writeModules writes the given files below a fresh temp dir and returns it.
func writeModules(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// loadAll loads the named files of dir, in order, into a new context.
func loadAll(t *testing.T, dir string, opts Options, names ...string) (*Context, []*Module) {
	t.Helper()
	c := NewContext(opts)
	var mods []*Module
	for _, name := range names {
		if m := c.Load(filepath.Join(dir, name)); m != nil {
			mods = append(mods, m)
		}
	}
	return c, mods
}

func errorsOf(diags hcl.Diagnostics) hcl.Diagnostics {
	var out hcl.Diagnostics
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			out = append(out, d)
		}
	}
	return out
}

func warningsOf(diags hcl.Diagnostics) hcl.Diagnostics {
	var out hcl.Diagnostics
	for _, d := range diags {
		if d.Severity == hcl.DiagWarning {
			out = append(out, d)
		}
	}
	return out
}

func summaries(diags hcl.Diagnostics) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Summary)
	}
	return out
}

const ifModule = `
module "acme-if" {
  prefix      = "if"
  namespace   = "urn:acme:if"
  description = "Interfaces"

  typedef "mtu" {
    type = "uint16"
  }

  container "interfaces" {
    list "interface" {
      key = "name"

      leaf "name" {
        type = "string"
      }
      leaf "mtu" {
        type = "mtu"
      }
      leaf "enabled" {
        type   = "boolean"
        status = "deprecated"
      }
    }
  }
}
`
