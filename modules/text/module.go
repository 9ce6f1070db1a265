// Package text renders modules as a plain-text tree.
package text

import (
	"context"
	"io"

	"github.com/specialistvlad/schematree/internal/ctxlog"
	"github.com/specialistvlad/schematree/internal/registry"
	"github.com/specialistvlad/schematree/internal/schema"
	"github.com/specialistvlad/schematree/internal/tree"
)

// Format is the registry name of this renderer.
const Format = "text"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Emit writes the tree of every schema module.
func Emit(ctx context.Context, _ *schema.Context, modules []*schema.Module, w io.Writer) error {
	ctxlog.FromContext(ctx).Debug("Rendering text tree.", "modules", len(modules))
	return tree.WriteModules(ctx, w, modules, tree.Options{})
}

// Register registers the renderer with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat(Format, registry.RendererFunc(Emit))
}
