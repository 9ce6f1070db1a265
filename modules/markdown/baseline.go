package markdown

import (
	"context"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"

	"github.com/specialistvlad/schematree/internal/ctxlog"
	"github.com/specialistvlad/schematree/internal/modpath"
	"github.com/specialistvlad/schematree/internal/schema"
)

// baseline is the validated, pruned module set the current modules are
// compared with. It lives in its own context so it never leaks into the run's
// diagnostics.
type baseline struct {
	sctx   *schema.Context
	failed bool
}

// loadBaseline loads the counterpart of every current module found in the
// BasePath directories. Imports are searched in BasePath first, then in
// ModulePath.
func loadBaseline(ctx context.Context, opts schema.Options, current []*schema.Module) (*baseline, error) {
	logger := ctxlog.FromContext(ctx)
	dirs := modpath.Split(opts.BasePath)

	sctx := schema.NewContext(schema.Options{
		SearchPaths: append(dirs, modpath.Split(opts.ModulePath)...),
		Verbose:     opts.Verbose,
	})

	var loaded []*schema.Module
	for _, m := range current {
		path, ok := findModule(dirs, m.Name)
		if !ok {
			logger.Debug("No baseline counterpart.", "module", m.Name)
			continue
		}
		if b := sctx.Load(path); b != nil {
			loaded = append(loaded, b)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sctx.Validate()
	for _, b := range loaded {
		if err := sctx.Prune(b); err != nil {
			return nil, err
		}
	}

	base := &baseline{sctx: sctx}
	if diags := sctx.Diagnostics(); diags.HasErrors() {
		base.failed = true
		logger.Warn("Baseline module set has errors; deviations are not reported.",
			"errors", countErrors(diags), "base_path", opts.BasePath)
	}
	logger.Info("Baseline loaded.", "modules", len(loaded), "base_path", opts.BasePath)
	return base, nil
}

func findModule(dirs []string, name string) (string, bool) {
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name+schema.FileExtension)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

func countErrors(diags hcl.Diagnostics) int {
	n := 0
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			n++
		}
	}
	return n
}
