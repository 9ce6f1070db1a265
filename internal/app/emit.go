package app

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/schematree/internal/ctxlog"
	"github.com/specialistvlad/schematree/internal/emit"
	"github.com/specialistvlad/schematree/internal/modpath"
	"github.com/specialistvlad/schematree/internal/schema"
)

// PrepareMarkdown derives the module and baseline path lists the markdown
// renderer reads from the context options. Only the first call has an effect.
func (p *Pipeline) PrepareMarkdown(ctx context.Context, moduleDir, baseDir string) {
	logger := ctxlog.FromContext(ctx)
	if p.markdownPrepared {
		logger.Debug("Markdown paths already prepared.")
		return
	}
	p.markdownPrepared = true

	base := modpath.BaseDir(baseDir, moduleDir)
	p.sctx.Options.ModulePath = modpath.SearchList(moduleDir)
	p.sctx.Options.BasePath = modpath.BaseList(base)
	logger.Info("Markdown paths prepared.",
		"vendor_layout", modpath.IsVendorLayout(moduleDir),
		"module_path", p.sctx.Options.ModulePath,
		"base_path", p.sctx.Options.BasePath,
	)
}

// Emit renders modules in format to dest. File destinations are written
// atomically; emit.Stdout writes to the pipeline's stdout.
func (p *Pipeline) Emit(ctx context.Context, format, dest string, modules []*schema.Module) error {
	renderer, err := p.registry.Lookup(format)
	if err != nil {
		return err
	}
	for _, m := range modules {
		if !m.Pruned() {
			return fmt.Errorf("emit %s: module %s: %w", format, m.Name, schema.ErrNotValidated)
		}
	}

	label := dest
	if dest == emit.Stdout {
		label = "stdout"
	}
	ctxlog.FromContext(ctx).Info("Emitting tree.", "format", format, "destination", label)

	err = emit.To(ctx, dest, p.stdout, func(w io.Writer) error {
		return renderer.Emit(ctx, p.sctx, modules, w)
	})
	if err != nil {
		return fmt.Errorf("failed to emit %s to %s: %w", format, label, err)
	}
	return nil
}
