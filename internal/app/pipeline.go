package app

import (
	"io"

	"github.com/specialistvlad/schematree/internal/diagnostics"
	"github.com/specialistvlad/schematree/internal/registry"
	"github.com/specialistvlad/schematree/internal/schema"
)

// Pipeline owns the module sequence of one run and drives it through
// loading, validation and emission. Modules are appended in load order, so
// primary modules always precede annotation modules.
type Pipeline struct {
	sctx     *schema.Context
	registry *registry.Registry
	printer  *diagnostics.Printer
	stdout   io.Writer

	modules []*schema.Module
	// reported is the number of context diagnostics already printed.
	reported         int
	markdownPrepared bool
}

// NewPipeline creates a pipeline around a fresh validation context.
func NewPipeline(sctx *schema.Context, reg *registry.Registry, printer *diagnostics.Printer, stdout io.Writer) *Pipeline {
	return &Pipeline{
		sctx:     sctx,
		registry: reg,
		printer:  printer,
		stdout:   stdout,
	}
}

// Context returns the shared validation context.
func (p *Pipeline) Context() *schema.Context {
	return p.sctx
}

// Modules returns a copy of the module sequence.
func (p *Pipeline) Modules() []*schema.Module {
	return append([]*schema.Module(nil), p.modules...)
}
