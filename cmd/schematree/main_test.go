package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/schematree/internal/app"
	"github.com/specialistvlad/schematree/internal/cli"
	"github.com/specialistvlad/schematree/internal/registry"
	"github.com/specialistvlad/schematree/internal/schema"
	"github.com/specialistvlad/schematree/modules/text"
)

const systemModule = `
module "acme-a" {
  prefix      = "a"
  description = "System"

  container "system" {
    leaf "name" {
      type = "string"
    }
  }
}
`

const brokenModule = `
module "acme-b" {
  prefix      = "b"
  description = "Peers"

  import "acme-a" {
    prefix = "a"
  }

  container "peer" {
    leaf "ref" {
      type = "leafref"
      path = "/a:system/a:missing"
    }
  }
}
`

func writeModels(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	for name, content := range files {
		path := filepath.Join(dir, "models", name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestRun_Help(t *testing.T) {
	writeModels(t, nil)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), &stdout, &stderr, []string{"--help"})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "schematree")
	assert.Equal(t, cli.ExitOK, exitCode(err, &stderr))
	assert.Empty(t, stderr.String())
}

func TestRun_UsageError(t *testing.T) {
	writeModels(t, nil)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), &stdout, &stderr, []string{"--no-such-flag"})
	assert.Equal(t, cli.ExitUsageError, exitCode(err, &stderr))
	assert.Contains(t, stderr.String(), "unknown flag")
}

func TestRun_DefaultsToTextOnStdout(t *testing.T) {
	writeModels(t, map[string]string{"acme-a.hcl": systemModule})
	t.Setenv(cli.EnvModuleDir, "")
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), &stdout, &stderr, nil)
	require.NoError(t, err)
	assert.Equal(t, "module: acme-a\n  +--rw system\n     +--rw name?   string\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_ValidationFailureWritesNothing(t *testing.T) {
	dir := writeModels(t, map[string]string{
		"acme-a.hcl": systemModule,
		"acme-b.hcl": brokenModule,
	})
	t.Setenv(cli.EnvModuleDir, "")
	var stdout, stderr bytes.Buffer
	out := filepath.Join(dir, "tree.txt")

	err := run(context.Background(), &stdout, &stderr, []string{"--text", out})

	var verr *app.ValidationError
	require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
	assert.Contains(t, stderr.String(), "Unresolved leafref")
	assert.Equal(t, cli.ExitFailure, exitCode(err, &stderr))
	assert.NoFileExists(t, out)
	assert.Empty(t, stdout.String())
}

// panicking registers a text renderer that panics while emitting.
type panicking struct{}

func (panicking) Register(r *registry.Registry) {
	r.RegisterFormat(text.Format, registry.RendererFunc(
		func(context.Context, *schema.Context, []*schema.Module, io.Writer) error {
			panic("renderer bug")
		}))
}

// htmlOnly registers a renderer for a format nobody requested.
type htmlOnly struct{}

func (htmlOnly) Register(r *registry.Registry) {
	r.RegisterFormat("html", registry.RendererFunc(
		func(context.Context, *schema.Context, []*schema.Module, io.Writer) error { return nil }))
}

func TestNewApp_RegistryPanicBecomesStartupError(t *testing.T) {
	cfg, err := app.NewConfig(app.Config{})
	require.NoError(t, err)

	a, err := newApp(io.Discard, io.Discard, cfg, htmlOnly{})
	assert.Nil(t, a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "critical startup error")
}

func TestNewApp_RunPanicIsNotAStartupError(t *testing.T) {
	dir := writeModels(t, map[string]string{"acme-a.hcl": systemModule})
	cfg, err := app.NewConfig(app.Config{ModuleDir: filepath.Join(dir, "models")})
	require.NoError(t, err)

	a, err := newApp(io.Discard, io.Discard, cfg, panicking{})
	require.NoError(t, err)
	assert.PanicsWithValue(t, "renderer bug", func() {
		_ = a.Run(context.Background())
	})
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
