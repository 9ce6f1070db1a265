// Package markdown renders modules as a Markdown document. Next to each
// module's tree it reports how the module deviates from its counterpart in a
// baseline module set.
package markdown

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/specialistvlad/schematree/internal/ctxlog"
	"github.com/specialistvlad/schematree/internal/registry"
	"github.com/specialistvlad/schematree/internal/schema"
	"github.com/specialistvlad/schematree/internal/tree"
)

// Format is the registry name of this renderer.
const Format = "markdown"

// Module implements the registry.Module interface for this package.
type Module struct{}

var title = cases.Title(language.English)

func heading(level int, text string) string {
	return strings.Repeat("#", level) + " " + title.String(text) + "\n\n"
}

// Emit writes one Markdown section per schema module. The baseline set is
// located through the context's BasePath and ModulePath options.
func Emit(ctx context.Context, sctx *schema.Context, modules []*schema.Module, w io.Writer) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Rendering markdown tree.", "modules", len(modules),
		"base_path", sctx.Options.BasePath, "module_path", sctx.Options.ModulePath)

	var current []*schema.Module
	for _, m := range modules {
		if m.Kind == schema.KindSchema {
			current = append(current, m)
		}
	}

	var base *baseline
	if sctx.Options.BasePath != "" {
		var err error
		base, err = loadBaseline(ctx, sctx.Options, current)
		if err != nil {
			return err
		}
	}

	for i, m := range current {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		section, err := renderModule(sctx, m, base)
		if err != nil {
			return fmt.Errorf("module %s: %w", m.Name, err)
		}
		if _, err := io.WriteString(w, section); err != nil {
			return err
		}
	}
	return nil
}

func renderModule(sctx *schema.Context, m *schema.Module, base *baseline) (string, error) {
	var b strings.Builder
	b.WriteString("# " + m.Name + "\n\n")
	if m.Description != "" {
		b.WriteString(m.Description + "\n\n")
	}

	treeText, err := treeString(m, tree.Options{Deviations: true})
	if err != nil {
		return "", err
	}
	b.WriteString("```text\n" + treeText + "```\n\n")

	b.WriteString(heading(2, "deviations"))
	switch {
	case base == nil:
		b.WriteString("_No baseline configured._\n")
	case base.failed:
		b.WriteString("_The baseline module set failed validation._\n")
	default:
		counterpart, ok := base.sctx.Module(m.Name)
		if !ok || counterpart.Kind != schema.KindSchema {
			b.WriteString("_No baseline module found._\n")
			break
		}
		report, err := compare(sctx, m, counterpart)
		if err != nil {
			return "", err
		}
		b.WriteString(report)
	}
	return b.String(), nil
}

func treeString(m *schema.Module, opts tree.Options) (string, error) {
	var b strings.Builder
	if err := tree.Write(&b, m, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Register registers the renderer with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat(Format, registry.RendererFunc(Emit))
}
