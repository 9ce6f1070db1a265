package tree

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/specialistvlad/schematree/internal/schema"
)

// Options control optional parts of the tree.
type Options struct {
	// Annotations prints, below each annotated node, the values contributed
	// by these annotation modules. Annotations from other modules are ignored.
	Annotations []*schema.Module
	// Deviations marks nodes carrying a deviation with a trailing note.
	Deviations bool
}

// WriteModules writes the tree of every schema module in order, separated by
// blank lines. Annotation modules are skipped. The context is checked between
// modules so a cancelled run stops early.
func WriteModules(ctx context.Context, w io.Writer, modules []*schema.Module, opts Options) error {
	first := true
	for _, m := range modules {
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.Kind != schema.KindSchema {
			continue
		}
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		first = false
		if err := Write(w, m, opts); err != nil {
			return fmt.Errorf("module %s: %w", m.Name, err)
		}
	}
	return nil
}

// Write writes the tree of a single module.
func Write(w io.Writer, m *schema.Module, opts Options) error {
	if !m.Pruned() {
		return fmt.Errorf("module %s: %w", m.Name, schema.ErrNotValidated)
	}

	p := &printer{w: w, opts: opts, module: m, home: m}
	p.printf("%s: %s\n", m.Kind, m.Name)
	p.nodes(OwnNodes(m.Nodes, m), "  ")

	for _, aug := range ForeignAugments(m) {
		p.printf("\n  augment %s:\n", aug.Target)
		p.home = aug.TargetNode.Module
		p.nodes(aug.Nodes, "    ")
		p.home = m
	}
	return p.err
}

type printer struct {
	w      io.Writer
	opts   Options
	module *schema.Module
	// home is the module whose tree is being printed; nodes of any other
	// module are prefixed.
	home *schema.Module
	err  error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) nodes(nodes []*schema.Node, indent string) {
	width := 0
	for _, n := range nodes {
		if wd := runewidth.StringWidth(Label(n, p.home)); wd > width {
			width = wd
		}
	}

	for i, n := range nodes {
		p.node(n, indent, width)

		childIndent := indent + "|  "
		if i == len(nodes)-1 {
			childIndent = indent + "   "
		}
		if len(p.opts.Annotations) > 0 {
			p.annotations(n, childIndent)
		}
		p.nodes(Children(n, p.module), childIndent)
	}
}

func (p *printer) node(n *schema.Node, indent string, width int) {
	label := Label(n, p.home)
	line := indent + StatusMarker(n) + "--"
	if n.Kind == schema.KindCase {
		line += label
	} else {
		line += Flags(n) + " " + label
	}

	if col := Column(n); col != "" {
		line += strings.Repeat(" ", width-runewidth.StringWidth(label)+3) + col
	}
	if p.opts.Deviations && len(n.Deviations) > 0 {
		var kinds []string
		for _, d := range n.Deviations {
			kinds = append(kinds, d.Deviate)
		}
		line += "   {deviated: " + strings.Join(kinds, ", ") + "}"
	}
	p.printf("%s\n", strings.TrimRight(line, " "))
}

func (p *printer) annotations(n *schema.Node, indent string) {
	values, err := AnnotationValues(n, p.opts.Annotations)
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return
	}
	for _, v := range values {
		p.printf("%s     %s = %s\n", indent, v.Key, v.Value)
	}
}
