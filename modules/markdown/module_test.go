package markdown_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/schematree/internal/modpath"
	"github.com/specialistvlad/schematree/internal/schema"
	"github.com/specialistvlad/schematree/internal/testutil"
	"github.com/specialistvlad/schematree/modules/markdown"
)

const baseIf = `
module "acme-if" {
  prefix      = "if"
  description = "Interfaces"

  container "interfaces" {
    list "interface" {
      key = "name"

      leaf "name" {
        type = "string"
      }
      leaf "mtu" {
        type = "uint16"
      }
      leaf "enabled" {
        type = "boolean"
      }
    }
  }
}
`

const currentIf = `
module "acme-if" {
  prefix      = "if"
  description = "Interfaces"

  container "interfaces" {
    list "interface" {
      key = "name"

      leaf "name" {
        type = "string"
      }
      leaf "mtu" {
        type = "uint32"
      }
      leaf "enabled" {
        type = "boolean"
      }
      leaf "speed" {
        type   = "uint64"
        config = false
      }
    }
  }
}
`

const devModule = `
module "acme-dev" {
  prefix      = "dev"
  description = "Platform deviations"

  import "acme-if" {
    prefix = "if"
  }

  deviation "/if:interfaces/if:interface/if:enabled" {
    deviate     = "not-supported"
    description = "No admin state"
  }
}
`

func emit(t *testing.T, sctx *schema.Context, modules []*schema.Module) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, markdown.Emit(context.Background(), sctx, modules, &buf))
	return buf.String()
}

func TestEmit_DeviationReport(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"base/acme-if.hcl":    baseIf,
		"models/acme-if.hcl":  currentIf,
		"models/acme-dev.hcl": devModule,
	})
	models := filepath.Join(dir, "models")
	sctx, modules := testutil.LoadModulesFrom(t, models, schema.Options{}, "acme-if.hcl", "acme-dev.hcl")
	sctx.Options.ModulePath = modpath.SearchList(models)
	sctx.Options.BasePath = modpath.BaseList(filepath.Join(dir, "base"))

	out := emit(t, sctx, modules)

	assert.Contains(t, out, "# acme-if\n\nInterfaces\n\n```text\nmodule: acme-if\n")
	assert.Contains(t, out, "## Deviations\n")
	assert.Contains(t, out, "### Added Nodes\n\n- `/interfaces/interface/speed` (acme-if)\n")
	assert.Contains(t, out, "### Not Supported\n\n- `/interfaces/interface/enabled`\n")
	assert.Contains(t, out, "### Replaced\n\n- `/interfaces/interface/mtu`: type uint16 -> uint32\n")
	assert.Contains(t, out, "### Deviation Statements\n\n- `not-supported` `/if:interfaces/if:interface/if:enabled` (acme-dev): No admin state\n")
	assert.Contains(t, out, "### Tree Diff\n\n```diff\n")
	assert.Contains(t, out, "-        +--rw enabled?   boolean\n")
	assert.Contains(t, out, "+        +--rw mtu?     uint32\n")

	assert.Contains(t, out, "# acme-dev\n")
	assert.Contains(t, out, "_No baseline module found._")
}

func TestEmit_IdenticalBaseline(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"base/acme-if.hcl":   baseIf,
		"models/acme-if.hcl": baseIf,
	})
	models := filepath.Join(dir, "models")
	sctx, modules := testutil.LoadModulesFrom(t, models, schema.Options{}, "acme-if.hcl")
	sctx.Options.BasePath = modpath.BaseList(filepath.Join(dir, "base"))

	out := emit(t, sctx, modules)
	assert.Contains(t, out, "## Deviations\n\nNo deviations from the baseline.\n")
	assert.NotContains(t, out, "```diff")
}

func TestEmit_NoBaselineConfigured(t *testing.T) {
	sctx, modules := testutil.LoadModules(t, map[string]string{"acme-if.hcl": baseIf}, "acme-if.hcl")

	out := emit(t, sctx, modules)
	assert.Contains(t, out, "## Deviations\n\n_No baseline configured._\n")
}

func TestEmit_BrokenBaseline(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"base/acme-if.hcl":   `module "acme-if" { prefix = "if"`,
		"models/acme-if.hcl": baseIf,
	})
	models := filepath.Join(dir, "models")
	sctx, modules := testutil.LoadModulesFrom(t, models, schema.Options{}, "acme-if.hcl")
	sctx.Options.BasePath = modpath.BaseList(filepath.Join(dir, "base"))

	out := emit(t, sctx, modules)
	assert.Contains(t, out, "_The baseline module set failed validation._")
	assert.False(t, sctx.Diagnostics().HasErrors(), "baseline problems stay out of the run context")
}
