// Package html renders modules as a standalone HTML document of nested lists.
package html

import (
	"context"
	"fmt"
	"html/template"
	"io"

	"github.com/specialistvlad/schematree/internal/ctxlog"
	"github.com/specialistvlad/schematree/internal/registry"
	"github.com/specialistvlad/schematree/internal/schema"
	"github.com/specialistvlad/schematree/internal/tree"
)

// Format is the registry name of this renderer.
const Format = "html"

// Module implements the registry.Module interface for this package.
type Module struct{}

type page struct {
	Title   string
	Modules []moduleView
}

type moduleView struct {
	Name        string
	Prefix      string
	Namespace   string
	Revision    string
	Description string
	Nodes       []nodeView
	Augments    []augmentView
}

type augmentView struct {
	Target string
	Nodes  []nodeView
}

type nodeView struct {
	Label       string
	Kind        string
	Flags       string
	Column      string
	Status      string
	Description string
	Path        string
	Annotations []tree.AnnotationValue
	Children    []nodeView
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
ul.tree { list-style: none; font-family: monospace; }
.status-deprecated { text-decoration: line-through; }
.flags { color: #666; }
.column { color: #05a; }
.annotation { color: #a50; }
</style>
</head>
<body>
{{- range .Modules}}
<section class="module" id="{{.Name}}">
<h1>module: {{.Name}}</h1>
<dl>
<dt>prefix</dt><dd>{{.Prefix}}</dd>
{{- if .Namespace}}
<dt>namespace</dt><dd>{{.Namespace}}</dd>
{{- end}}
{{- if .Revision}}
<dt>revision</dt><dd>{{.Revision}}</dd>
{{- end}}
</dl>
{{- if .Description}}
<p>{{.Description}}</p>
{{- end}}
{{template "nodes" .Nodes}}
{{- range .Augments}}
<h2>augment {{.Target}}</h2>
{{template "nodes" .Nodes}}
{{- end}}
</section>
{{- end}}
</body>
</html>
{{define "nodes"}}
{{- if .}}
<ul class="tree">
{{- range .}}
<li class="{{.Kind}} status-{{.Status}}" data-path="{{.Path}}"{{if .Description}} title="{{.Description}}"{{end}}>
<span class="flags">{{.Flags}}</span> <span class="name">{{.Label}}</span>{{if .Column}} <span class="column">{{.Column}}</span>{{end}}
{{- range .Annotations}}
<div class="annotation" data-key="{{.Key}}">{{.Key}} = {{.Value}}</div>
{{- end}}
{{template "nodes" .Children}}
</li>
{{- end}}
</ul>
{{- end}}
{{- end}}
`))

// Emit writes one HTML document covering every schema module.
func Emit(ctx context.Context, _ *schema.Context, modules []*schema.Module, w io.Writer) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Rendering HTML tree.", "modules", len(modules))

	p := page{Title: "schema tree"}
	for _, m := range modules {
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.Kind != schema.KindSchema {
			continue
		}
		if !m.Pruned() {
			return fmt.Errorf("module %s: %w", m.Name, schema.ErrNotValidated)
		}
		view, err := buildModule(m, modules)
		if err != nil {
			return err
		}
		p.Modules = append(p.Modules, view)
	}
	if len(p.Modules) == 1 {
		p.Title = p.Modules[0].Name
	}

	return pageTemplate.Execute(w, p)
}

func buildModule(m *schema.Module, sequence []*schema.Module) (moduleView, error) {
	view := moduleView{
		Name:        m.Name,
		Prefix:      m.Prefix,
		Namespace:   m.Namespace,
		Revision:    m.Revision,
		Description: m.Description,
	}

	var err error
	view.Nodes, err = buildNodes(tree.OwnNodes(m.Nodes, m), m, m, sequence)
	if err != nil {
		return view, err
	}
	for _, aug := range tree.ForeignAugments(m) {
		nodes, err := buildNodes(aug.Nodes, m, aug.TargetNode.Module, sequence)
		if err != nil {
			return view, err
		}
		view.Augments = append(view.Augments, augmentView{Target: aug.Target, Nodes: nodes})
	}
	return view, nil
}

// buildNodes converts nodes into views. Only annotations from modules of
// sequence are shown.
func buildNodes(nodes []*schema.Node, m, home *schema.Module, sequence []*schema.Module) ([]nodeView, error) {
	views := make([]nodeView, 0, len(nodes))
	for _, n := range nodes {
		annotations, err := tree.AnnotationValues(n, sequence)
		if err != nil {
			return nil, err
		}
		children, err := buildNodes(tree.Children(n, m), m, home, sequence)
		if err != nil {
			return nil, err
		}

		view := nodeView{
			Label:       tree.Label(n, home),
			Kind:        n.Kind.String(),
			Flags:       tree.Flags(n),
			Column:      tree.Column(n),
			Status:      n.Status.String(),
			Description: n.Description,
			Path:        n.SchemaPath(),
			Annotations: annotations,
			Children:    children,
		}
		if n.Kind == schema.KindCase {
			view.Flags = ""
		}
		views = append(views, view)
	}
	return views, nil
}

// Register registers the renderer with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat(Format, registry.RendererFunc(Emit))
}
