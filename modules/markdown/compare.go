package markdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/specialistvlad/schematree/internal/schema"
	"github.com/specialistvlad/schematree/internal/tree"
)

// dataNodes indexes every data node below nodes by its data path, including
// nodes other modules augmented into the tree.
func dataNodes(nodes []*schema.Node) map[string]*schema.Node {
	out := make(map[string]*schema.Node)
	var visit func([]*schema.Node)
	visit = func(nodes []*schema.Node) {
		for _, n := range nodes {
			if n.Kind.IsData() {
				out[n.DataPath()] = n
			}
			visit(n.Children)
		}
	}
	visit(nodes)
	return out
}

func sortedKeys(m map[string]*schema.Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// changes describes how cur differs from base, or "" when it does not.
func changes(base, cur *schema.Node) string {
	var parts []string
	if bt, ct := tree.TypeName(base.Type), tree.TypeName(cur.Type); bt != ct {
		parts = append(parts, fmt.Sprintf("type %s -> %s", bt, ct))
	}
	if base.IsConfig() != cur.IsConfig() {
		parts = append(parts, fmt.Sprintf("%s -> %s", tree.Flags(base), tree.Flags(cur)))
	}
	if base.Mandatory != cur.Mandatory {
		parts = append(parts, fmt.Sprintf("mandatory %t -> %t", base.Mandatory, cur.Mandatory))
	}
	return strings.Join(parts, ", ")
}

// compare renders the deviation report of cur against its baseline base.
func compare(sctx *schema.Context, cur, base *schema.Module) (string, error) {
	curNodes := dataNodes(cur.Nodes)
	baseNodes := dataNodes(base.Nodes)

	var added, removed, replaced []string
	for _, path := range sortedKeys(curNodes) {
		n := curNodes[path]
		b, ok := baseNodes[path]
		if !ok {
			added = append(added, fmt.Sprintf("- `%s` (%s)", path, n.Module.Name))
			continue
		}
		if c := changes(b, n); c != "" {
			replaced = append(replaced, fmt.Sprintf("- `%s`: %s", path, c))
		}
	}
	for _, path := range sortedKeys(baseNodes) {
		if _, ok := curNodes[path]; !ok {
			removed = append(removed, fmt.Sprintf("- `%s`", path))
		}
	}
	statements := deviationStatements(sctx, cur)

	curTree, err := treeString(cur, tree.Options{})
	if err != nil {
		return "", err
	}
	baseTree, err := treeString(base, tree.Options{})
	if err != nil {
		return "", err
	}

	if len(added)+len(removed)+len(replaced)+len(statements) == 0 && curTree == baseTree {
		return "No deviations from the baseline.\n", nil
	}

	var b strings.Builder
	section := func(name string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString(heading(3, name))
		b.WriteString(strings.Join(items, "\n") + "\n\n")
	}
	section("added nodes", added)
	section("not supported", removed)
	section("replaced", replaced)
	section("deviation statements", statements)

	b.WriteString(heading(3, "tree diff"))
	b.WriteString("```diff\n" + lineDiff(baseTree, curTree) + "```\n")
	return b.String(), nil
}

// deviationStatements lists the deviations any module of the context applies
// to cur, in load order.
func deviationStatements(sctx *schema.Context, cur *schema.Module) []string {
	var out []string
	for _, m := range sctx.Modules() {
		for _, dev := range m.Deviations {
			if dev.TargetNode == nil || dev.TargetNode.Module != cur {
				continue
			}
			line := fmt.Sprintf("- `%s` `%s` (%s)", dev.Deviate, dev.Target, m.Name)
			if dev.Description != "" {
				line += ": " + dev.Description
			}
			out = append(out, line)
		}
	}
	return out
}

// lineDiff renders a unified-style line diff without hunk headers.
func lineDiff(from, to string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		mark := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			mark = "+"
		case diffmatchpatch.DiffDelete:
			mark = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			out.WriteString(mark + line)
		}
	}
	return out.String()
}
