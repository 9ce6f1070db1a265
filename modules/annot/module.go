// Package annot renders modules as a text tree with the values of loaded
// annotation modules merged in.
package annot

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/specialistvlad/schematree/internal/ctxlog"
	"github.com/specialistvlad/schematree/internal/registry"
	"github.com/specialistvlad/schematree/internal/schema"
	"github.com/specialistvlad/schematree/internal/tree"
)

// Format is the registry name of this renderer.
const Format = "annot"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Emit writes the annotated tree of every schema module followed by a
// summary of the annotation modules.
func Emit(ctx context.Context, _ *schema.Context, modules []*schema.Module, w io.Writer) error {
	logger := ctxlog.FromContext(ctx)

	var annotations []*schema.Module
	for _, m := range modules {
		if m.Kind == schema.KindAnnotation {
			annotations = append(annotations, m)
		}
	}
	logger.Debug("Rendering annotated tree.", "modules", len(modules), "annotation_modules", len(annotations))

	if err := tree.WriteModules(ctx, w, modules, tree.Options{Annotations: modules}); err != nil {
		return err
	}
	if len(annotations) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeSummary(w, annotations)
}

func writeSummary(w io.Writer, modules []*schema.Module) error {
	var b strings.Builder
	b.WriteString("\nannotations:\n")
	for _, m := range modules {
		fmt.Fprintf(&b, "  %s (%s)\n", m.Name, m.Prefix)
		for _, ann := range m.Annotations {
			keys := make([]string, 0, len(ann.Values))
			for k := range ann.Values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(&b, "    %s   %s\n", ann.Target, strings.Join(keys, " "))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Register registers the renderer with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat(Format, registry.RendererFunc(Emit))
}
