package app

import (
	"context"

	"github.com/specialistvlad/schematree/internal/ctxlog"
	"github.com/specialistvlad/schematree/internal/diagnostics"
	"github.com/specialistvlad/schematree/internal/fsutil"
	"github.com/specialistvlad/schematree/internal/modpath"
	"github.com/specialistvlad/schematree/internal/schema"
	"github.com/specialistvlad/schematree/modules/annot"
)

// Run loads and validates the primary modules, runs the annotation pass when
// the annot format is requested, and emits every requested format in order.
// Both validation passes finish before the first output is written, so an
// error in either pass leaves every destination untouched.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	cfg := a.config

	sctx := schema.NewContext(schema.Options{
		SearchPaths: a.searchPaths(),
		Verbose:     cfg.Verbose,
	})
	printer := diagnostics.NewPrinter(a.errW, diagnostics.PrinterOptions{
		Verbose: cfg.Verbose,
		Format:  cfg.DiagnosticsFormat,
		Color:   cfg.Color,
		Files:   sctx.Files,
	})
	p := NewPipeline(sctx, a.registry, printer, a.outW)

	primaryDiscovery := discoverIn(ctx, cfg.ModuleDir, fsutil.FindOptions{Exclude: cfg.AnnotPrefix})
	if _, err := p.Load(ctx, cfg.ModuleFiles, primaryDiscovery); err != nil {
		return err
	}
	if err := p.Validate(ctx); err != nil {
		return err
	}
	primary := p.Modules()

	if cfg.Outputs.Markdown != "" {
		p.PrepareMarkdown(ctx, cfg.ModuleDir, cfg.BaseDir)
	}

	if cfg.Outputs.Annot != "" {
		annotDiscovery := discoverIn(ctx, cfg.AnnotDir, fsutil.FindOptions{Prefix: cfg.AnnotPrefix})
		loaded, err := p.Load(ctx, cfg.AnnotFiles, annotDiscovery)
		if err != nil {
			return err
		}
		a.logger.Info("Annotation modules loaded.", "count", len(loaded))
		if err := p.Validate(ctx); err != nil {
			return err
		}
	}

	for _, out := range cfg.Outputs.Requested() {
		if err := ctx.Err(); err != nil {
			return err
		}
		modules := primary
		if out.Format == annot.Format {
			modules = p.Modules()
		}
		if err := p.Emit(ctx, out.Format, out.Dest, modules); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// searchPaths lists where imports are looked up: explicit search paths
// first, then the module directory's own list.
func (a *App) searchPaths() []string {
	paths := append([]string(nil), a.config.SearchPaths...)
	return append(paths, modpath.Split(modpath.SearchList(a.config.ModuleDir))...)
}
