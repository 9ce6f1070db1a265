// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements context-wide validation. Validation is incremental:
// each call processes the modules registered since the previous call, so a
// second load pass (annotation modules) can be validated against the modules
// of the first pass without resolving those again.
//
// The phases run in a fixed order because later phases look at the results
// of earlier ones:
//
//  1. imports, loading missing modules from the search path
//  2. types and typedef chains
//  3. grouping instantiation (`uses`)
//  4. augments
//  5. deviations
//  6. structure: duplicate names, list keys
//  7. leafref paths
//  8. annotation targets
//  9. lint warnings
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/schematree/internal/schemapath"
)

// Validate resolves every module that has not been validated yet and records
// the resulting diagnostics in the context.
func (c *Context) Validate() {
	c.resolveAllImports()

	var pending []*Module
	for _, m := range c.order {
		if !m.validated {
			pending = append(pending, m)
		}
	}
	if len(pending) == 0 {
		return
	}

	for _, m := range pending {
		c.resolveModuleTypes(m)
	}
	for _, m := range pending {
		c.expandModuleUses(m)
	}
	c.applyAugments(pending)
	for _, m := range pending {
		c.applyDeviations(m)
	}
	for _, m := range pending {
		c.checkStructure(m)
	}
	for _, m := range pending {
		c.resolveLeafrefs(m)
	}
	for _, m := range pending {
		c.applyAnnotations(m)
	}
	for _, m := range pending {
		c.lint(m)
		m.validated = true
	}
}

// resolveAllImports binds imports until no new module gets loaded.
func (c *Context) resolveAllImports() {
	done := make(map[*Module]bool)
	for {
		progress := false
		for i := 0; i < len(c.order); i++ {
			m := c.order[i]
			if m.validated || done[m] {
				continue
			}
			done[m] = true
			progress = true
			c.resolveImports(m)
		}
		if !progress {
			return
		}
	}
}

func (c *Context) resolveImports(m *Module) {
	seen := map[string]*Import{}
	for _, imp := range m.Imports {
		if imp.Prefix != "" {
			if imp.Prefix == m.Prefix {
				c.errorf(imp.Range, "Duplicate prefix", "Import of %q uses the module's own prefix %q.", imp.Module, imp.Prefix)
			} else if prev, ok := seen[imp.Prefix]; ok {
				c.errorf(imp.Range, "Duplicate prefix", "Prefix %q is already used by the import of %q.", imp.Prefix, prev.Module)
			}
			seen[imp.Prefix] = imp
		}

		target, ok := c.modules[imp.Module]
		if !ok {
			if path, found := c.findInSearchPath(imp.Module); found {
				c.Load(path)
				target, ok = c.modules[imp.Module]
			}
		}
		if !ok {
			c.errorf(imp.Range, "Unknown import",
				"Module %q is not loaded and was not found in the search path [%s].",
				imp.Module, strings.Join(c.Options.SearchPaths, ", "))
			continue
		}
		imp.Target = target
	}
}

func (c *Context) resolveModuleTypes(m *Module) {
	names := make([]string, 0, len(m.Typedefs))
	for name := range m.Typedefs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		td := m.Typedefs[name]
		c.resolveType(td.Type, []*Typedef{td})
	}

	gnames := make([]string, 0, len(m.Groupings))
	for name := range m.Groupings {
		gnames = append(gnames, name)
	}
	sort.Strings(gnames)
	for _, name := range gnames {
		walk(m.Groupings[name].Nodes, func(n *Node) { c.resolveType(n.Type, nil) })
	}

	walk(m.Nodes, func(n *Node) { c.resolveType(n.Type, nil) })
	for _, aug := range m.Augments {
		walk(aug.Nodes, func(n *Node) { c.resolveType(n.Type, nil) })
	}
}

// walk visits nodes depth-first in declaration order.
func walk(nodes []*Node, fn func(*Node)) {
	for _, n := range nodes {
		fn(n)
		walk(n.Children, fn)
	}
}

func (c *Context) lookupGrouping(scope *Module, u *Uses) *Grouping {
	prefix, name := splitQName(u.Grouping)
	owner := c.moduleForPrefix(scope, prefix)
	if owner == nil {
		c.errorf(u.Range, "Unknown prefix", "The prefix %q in grouping reference %q is not known in module %q.", prefix, u.Grouping, scope.Name)
		return nil
	}
	g, ok := owner.Groupings[name]
	if !ok {
		c.errorf(u.Range, "Unknown grouping", "Module %q has no grouping %q.", owner.Name, name)
		return nil
	}
	return g
}

func cloneNode(tmpl *Node, owner *Module, parent *Node) *Node {
	n := *tmpl
	n.Module = owner
	n.Parent = parent
	n.Key = append([]string(nil), tmpl.Key...)
	n.Children = make([]*Node, 0, len(tmpl.Children))
	for _, ch := range tmpl.Children {
		n.Children = append(n.Children, cloneNode(ch, owner, &n))
	}
	return &n
}

// instantiate expands grouping references into fresh node copies owned by
// owner. Grouping names are looked up in scope, the module that wrote them.
func (c *Context) instantiate(scope, owner *Module, uses []*Uses, parent *Node, stack []*Grouping) []*Node {
	var out []*Node
	for _, u := range uses {
		g := c.lookupGrouping(scope, u)
		if g == nil {
			continue
		}
		cyclic := false
		for _, seen := range stack {
			if seen == g {
				cyclic = true
			}
		}
		if cyclic {
			c.errorf(u.Range, "Grouping cycle", "Grouping %q is used inside itself.", g.Name)
			continue
		}

		inner := append(stack[:len(stack):len(stack)], g)
		for _, tmpl := range g.Nodes {
			clone := cloneNode(tmpl, owner, parent)
			c.expandNode(g.Module, owner, clone, inner)
			out = append(out, clone)
		}
		out = append(out, c.instantiate(g.Module, owner, g.Uses, parent, inner)...)
	}
	return out
}

func (c *Context) expandNode(scope, owner *Module, n *Node, stack []*Grouping) {
	for _, ch := range n.Children {
		c.expandNode(scope, owner, ch, stack)
	}
	if len(n.Uses) > 0 {
		n.Children = append(n.Children, c.instantiate(scope, owner, n.Uses, n, stack)...)
		n.Uses = nil
	}
}

func (c *Context) expandModuleUses(m *Module) {
	for _, n := range m.Nodes {
		c.expandNode(m, m, n, nil)
	}
	m.Nodes = append(m.Nodes, c.instantiate(m, m, m.Uses, nil, nil)...)
	m.Uses = nil

	for _, aug := range m.Augments {
		for _, n := range aug.Nodes {
			c.expandNode(m, m, n, nil)
		}
		aug.Nodes = append(aug.Nodes, c.instantiate(m, m, aug.Uses, nil, nil)...)
		aug.Uses = nil
	}
}

// resolveSchemaPath finds the node a path points at. In data mode choices and
// cases are transparent; otherwise they are explicit steps. from is the
// context node for relative paths. Explicit prefixes are mapped through the
// imports of scope, the module that wrote the path; unprefixed steps name
// nodes of home.
func (c *Context) resolveSchemaPath(scope, home *Module, from *Node, raw string, dataMode bool) (*Node, error) {
	p, err := schemapath.Parse(raw)
	if err != nil {
		return nil, err
	}

	var cur *Node
	if !p.Absolute {
		if from == nil {
			return nil, fmt.Errorf("relative path %q has no context node", raw)
		}
		cur = from
		for i := 0; i < p.Up; i++ {
			if cur == nil {
				return nil, fmt.Errorf("path %q goes above the root", raw)
			}
			if dataMode {
				cur = cur.DataParent()
			} else {
				cur = cur.Parent
			}
		}
	}

	for i, seg := range p.Segments {
		mod := home
		if seg.Prefix != "" {
			mod = c.moduleForPrefix(scope, seg.Prefix)
		}
		if mod == nil {
			return nil, fmt.Errorf("unknown prefix %q in path %q", seg.Prefix, raw)
		}
		var candidates []*Node
		if cur == nil {
			candidates = mod.Nodes
		} else {
			candidates = cur.Children
		}
		next := findChild(candidates, seg.Name, mod, dataMode)
		if next == nil {
			return nil, fmt.Errorf("node %q (step %d of %q) does not exist in module %q", seg.Name, i+1, raw, mod.Name)
		}
		cur = next
	}
	return cur, nil
}

func findChild(nodes []*Node, name string, mod *Module, dataMode bool) *Node {
	for _, n := range nodes {
		if dataMode && !n.Kind.IsData() {
			if found := findChild(n.Children, name, mod, dataMode); found != nil {
				return found
			}
			continue
		}
		if n.Name == name && n.Module == mod {
			return n
		}
	}
	return nil
}

// applyAugments attaches augment nodes to their targets. Augments may target
// nodes introduced by other augments, so resolution repeats while it makes
// progress.
func (c *Context) applyAugments(modules []*Module) {
	var pending []*Augment
	for _, m := range modules {
		pending = append(pending, m.Augments...)
	}

	for len(pending) > 0 {
		var next []*Augment
		for _, aug := range pending {
			target, err := c.resolveSchemaPath(aug.Module, aug.Module, nil, aug.Target, false)
			if err != nil {
				next = append(next, aug)
				continue
			}
			if !target.Kind.CanHoldChildren() {
				c.errorf(aug.Range, "Invalid augment target", "Augment target %q is a %s and cannot hold child nodes.", aug.Target, target.Kind)
				continue
			}
			aug.TargetNode = target
			for _, n := range aug.Nodes {
				n.Parent = target
				target.Children = append(target.Children, n)
			}
		}
		if len(next) == len(pending) {
			for _, aug := range next {
				_, err := c.resolveSchemaPath(aug.Module, aug.Module, nil, aug.Target, false)
				c.errorf(aug.Range, "Augment target not found", "%s.", err)
			}
			return
		}
		pending = next
	}
}

func (c *Context) applyDeviations(m *Module) {
	for _, dev := range m.Deviations {
		target, err := c.resolveSchemaPath(m, m, nil, dev.Target, false)
		if err != nil {
			c.errorf(dev.Range, "Deviation target not found", "%s.", err)
			continue
		}
		dev.TargetNode = target
		target.Deviations = append(target.Deviations, dev)

		switch dev.Deviate {
		case DeviateNotSupported:
			target.NotSupported = true
		case DeviateReplace:
			if dev.Type != nil {
				if !target.Kind.CanHoldChildren() {
					c.resolveType(dev.Type, nil)
					target.Type = dev.Type
				} else {
					c.errorf(dev.Range, "Invalid deviation", "Cannot replace the type of %s %q.", target.Kind, target.Name)
				}
			}
			if dev.Config != nil {
				target.Config = dev.Config
			}
			if dev.Mandatory != nil {
				target.Mandatory = *dev.Mandatory
			}
		}
	}
}

func (c *Context) checkStructure(m *Module) {
	c.checkSiblings(m.Nodes)
	for _, aug := range m.Augments {
		c.checkSiblings(aug.Nodes)
	}

	check := func(n *Node) {
		if n.Module != m {
			return
		}
		c.checkSiblings(n.Children)
		if n.Kind != KindList {
			return
		}
		for _, key := range n.Key {
			k := findChild(n.Children, key, n.Module, true)
			if k == nil || k.Kind != KindLeaf {
				c.errorf(n.Range, "Invalid list key", "Key %q of list %q does not name a child leaf.", key, n.Name)
			}
		}
		if len(n.Key) == 0 && n.IsConfig() {
			c.warnf(n.Range, "List without key", "Configuration list %q should declare a key.", n.Name)
		}
	}
	walk(m.Nodes, check)
	for _, aug := range m.Augments {
		walk(aug.Nodes, check)
	}
}

// checkSiblings reports siblings sharing a name within the same module.
// Choices and cases are flattened because their children share one data level.
func (c *Context) checkSiblings(nodes []*Node) {
	seen := map[string]*Node{}
	var visit func([]*Node)
	visit = func(nodes []*Node) {
		for _, n := range nodes {
			key := n.Module.Name + ":" + n.Name
			if n.Kind.IsData() {
				if prev, ok := seen[key]; ok && prev != n {
					c.errorf(n.Range, "Duplicate node", "A node named %q is already defined at %s.", n.Name, prev.Range.String())
					continue
				}
				seen[key] = n
				continue
			}
			visit(n.Children)
		}
	}
	visit(nodes)
}

func (c *Context) resolveLeafrefs(m *Module) {
	resolve := func(n *Node) {
		if n.Type == nil {
			return
		}
		base := n.Type.Base()
		if base == nil || base.Name != "leafref" || base.Path == "" {
			return
		}

		// Grouping copies belong to the instantiating module, so unprefixed
		// steps follow the node rather than the module that wrote the type.
		target, err := c.resolveSchemaPath(base.module, n.Module, n, base.Path, true)
		if err != nil {
			c.errorf(n.Range, "Unresolved leafref", "Leafref %q: %s.", n.Name, err)
			return
		}
		if target.Kind != KindLeaf && target.Kind != KindLeafList {
			c.errorf(n.Range, "Invalid leafref target", "Leafref %q points at %s %q; only leaves can be referenced.", n.Name, target.Kind, target.Name)
			return
		}
		if target.NotSupported {
			c.errorf(n.Range, "Invalid leafref target", "Leafref %q points at %q, which is deviated as not supported.", n.Name, target.Name)
			return
		}
		if target.Status == StatusDeprecated {
			c.warnf(n.Range, "Reference to deprecated node", "Leafref %q points at deprecated node %q.", n.Name, target.Name)
		}
		n.Ref = target
	}
	walk(m.Nodes, resolve)
	for _, aug := range m.Augments {
		walk(aug.Nodes, resolve)
	}
}

func (c *Context) applyAnnotations(m *Module) {
	for _, ann := range m.Annotations {
		target, err := c.resolveSchemaPath(m, m, nil, ann.Target, false)
		if err != nil {
			c.errorf(ann.Range, "Annotation target not found", "%s.", err)
			continue
		}
		ann.TargetNode = target
		target.Annotations = append(target.Annotations, ann)
	}
}

func (c *Context) lint(m *Module) {
	if m.Kind == KindSchema && m.Description == "" {
		c.warnf(m.DeclRange, "Missing module description", "Module %q has no description.", m.Name)
	}
	for _, imp := range m.Imports {
		if imp.Target != nil && !imp.used {
			c.warnf(imp.Range, "Unused import", "Module %q imports %q but never uses prefix %q.", m.Name, imp.Module, imp.Prefix)
		}
	}
}
