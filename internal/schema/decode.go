// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file turns parsed HCL bodies into Module and Node values. Decoding is
// purely structural: nothing here looks at other modules. Every problem is
// reported as a diagnostic tied to the offending source range.
package schema

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

func labeled(types ...string) []hcl.BlockHeaderSchema {
	blocks := make([]hcl.BlockHeaderSchema, 0, len(types))
	for _, t := range types {
		blocks = append(blocks, hcl.BlockHeaderSchema{Type: t, LabelNames: []string{"name"}})
	}
	return blocks
}

func optional(names ...string) []hcl.AttributeSchema {
	attrs := make([]hcl.AttributeSchema, 0, len(names))
	for _, n := range names {
		attrs = append(attrs, hcl.AttributeSchema{Name: n})
	}
	return attrs
}

func required(name string, rest ...hcl.AttributeSchema) []hcl.AttributeSchema {
	return append([]hcl.AttributeSchema{{Name: name, Required: true}}, rest...)
}

var dataBlockTypes = []string{"container", "list", "leaf", "leaf-list", "choice"}

var kindByBlock = map[string]NodeKind{
	"container": KindContainer,
	"list":      KindList,
	"leaf":      KindLeaf,
	"leaf-list": KindLeafList,
	"choice":    KindChoice,
	"case":      KindCase,
}

var fileSchema = &hcl.BodySchema{
	Blocks: labeled("module", "annotation"),
}

var moduleBodySchema = &hcl.BodySchema{
	Attributes: required("prefix", optional("namespace", "revision", "organization", "description", "uses")...),
	Blocks: append(
		labeled(append([]string{"import", "typedef", "grouping"}, dataBlockTypes...)...),
		hcl.BlockHeaderSchema{Type: "augment", LabelNames: []string{"target"}},
		hcl.BlockHeaderSchema{Type: "deviation", LabelNames: []string{"target"}},
		hcl.BlockHeaderSchema{Type: "annotate", LabelNames: []string{"target"}},
	),
}

var nodeSchemas = map[NodeKind]*hcl.BodySchema{
	KindContainer: {
		Attributes: optional("description", "status", "config", "uses", "presence"),
		Blocks:     labeled(dataBlockTypes...),
	},
	KindList: {
		Attributes: optional("description", "status", "config", "uses", "key"),
		Blocks:     labeled(dataBlockTypes...),
	},
	KindLeaf: {
		Attributes: required("type", optional("path", "enum", "description", "status", "config", "mandatory", "units", "default")...),
	},
	KindLeafList: {
		Attributes: required("type", optional("path", "enum", "description", "status", "config", "units")...),
	},
	KindChoice: {
		Attributes: optional("description", "status", "config", "mandatory"),
		Blocks:     labeled(append([]string{"case"}, dataBlockTypes...)...),
	},
	KindCase: {
		Attributes: optional("description", "status", "uses"),
		Blocks:     labeled(dataBlockTypes...),
	},
}

var groupingSchema = &hcl.BodySchema{
	Attributes: optional("description", "uses"),
	Blocks:     labeled(dataBlockTypes...),
}

var augmentSchema = &hcl.BodySchema{
	Attributes: optional("description", "uses"),
	Blocks:     labeled(append([]string{"case"}, dataBlockTypes...)...),
}

var typedefSchema = &hcl.BodySchema{
	Attributes: required("type", optional("path", "enum", "description", "units", "default")...),
}

var importSchema = &hcl.BodySchema{
	Attributes: required("prefix", optional("description", "revision")...),
}

var deviationSchema = &hcl.BodySchema{
	Attributes: required("deviate", optional("description", "type", "path", "enum", "config", "mandatory")...),
}

// decodeFile decodes the single top-level module or annotation block of a file.
func decodeFile(file *hcl.File, path string) (*Module, hcl.Diagnostics) {
	content, diags := file.Body.Content(fileSchema)
	if len(content.Blocks) == 0 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing module block",
			Detail:   "A schema file must declare exactly one \"module\" or \"annotation\" block.",
			Subject:  content.MissingItemRange.Ptr(),
		})
		return nil, diags
	}
	if len(content.Blocks) > 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Multiple module blocks",
			Detail:   "A schema file must declare exactly one \"module\" or \"annotation\" block.",
			Subject:  content.Blocks[1].DefRange.Ptr(),
		})
		return nil, diags
	}

	block := content.Blocks[0]
	m := &Module{
		Name:      block.Labels[0],
		Kind:      KindSchema,
		FilePath:  path,
		DeclRange: block.DefRange,
		Typedefs:  make(map[string]*Typedef),
		Groupings: make(map[string]*Grouping),
	}
	if block.Type == "annotation" {
		m.Kind = KindAnnotation
	}

	diags = append(diags, decodeModuleBody(m, block.Body)...)
	return m, diags
}

func decodeModuleBody(m *Module, body hcl.Body) hcl.Diagnostics {
	content, diags := body.Content(moduleBodySchema)

	var d hcl.Diagnostics
	m.Prefix, d = attrString(content.Attributes, "prefix")
	diags = append(diags, d...)
	m.Namespace, d = attrString(content.Attributes, "namespace")
	diags = append(diags, d...)
	m.Revision, d = attrString(content.Attributes, "revision")
	diags = append(diags, d...)
	m.Organization, d = attrString(content.Attributes, "organization")
	diags = append(diags, d...)
	m.Description, d = attrString(content.Attributes, "description")
	diags = append(diags, d...)
	m.Uses, d = decodeUses(content.Attributes)
	diags = append(diags, d...)

	for _, block := range content.Blocks {
		if m.Kind == KindAnnotation && block.Type != "import" && block.Type != "annotate" {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unexpected block in annotation module",
				Detail:   fmt.Sprintf("Annotation modules may only contain \"import\" and \"annotate\" blocks, found %q.", block.Type),
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}

		switch block.Type {
		case "import":
			imp, d := decodeImport(block)
			diags = append(diags, d...)
			m.Imports = append(m.Imports, imp)
		case "typedef":
			td, d := decodeTypedef(m, block)
			diags = append(diags, d...)
			if prev, ok := m.Typedefs[td.Name]; ok {
				diags = append(diags, duplicateDiag("typedef", td.Name, block.DefRange, prev.Range))
				continue
			}
			m.Typedefs[td.Name] = td
		case "grouping":
			g, d := decodeGrouping(m, block)
			diags = append(diags, d...)
			if prev, ok := m.Groupings[g.Name]; ok {
				diags = append(diags, duplicateDiag("grouping", g.Name, block.DefRange, prev.Range))
				continue
			}
			m.Groupings[g.Name] = g
		case "augment":
			aug, d := decodeAugment(m, block)
			diags = append(diags, d...)
			m.Augments = append(m.Augments, aug)
		case "deviation":
			dev, d := decodeDeviation(m, block)
			diags = append(diags, d...)
			m.Deviations = append(m.Deviations, dev)
		case "annotate":
			if m.Kind != KindAnnotation {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Unexpected annotate block",
					Detail:   "Only annotation modules may contain \"annotate\" blocks.",
					Subject:  block.DefRange.Ptr(),
				})
				continue
			}
			ann, d := decodeAnnotation(m, block)
			diags = append(diags, d...)
			m.Annotations = append(m.Annotations, ann)
		default:
			n, d := decodeNode(m, nil, block)
			diags = append(diags, d...)
			if n != nil {
				m.Nodes = append(m.Nodes, n)
			}
		}
	}

	return diags
}

func duplicateDiag(what, name string, rng, prev hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Duplicate " + what,
		Detail:   fmt.Sprintf("The %s %q was already defined at %s.", what, name, prev.String()),
		Subject:  rng.Ptr(),
	}
}

func decodeUses(attrs hcl.Attributes) ([]*Uses, hcl.Diagnostics) {
	names, diags := attrStrings(attrs, "uses")
	if len(names) == 0 {
		return nil, diags
	}
	rng := attrs["uses"].Range
	uses := make([]*Uses, 0, len(names))
	for _, name := range names {
		uses = append(uses, &Uses{Grouping: name, Range: rng})
	}
	return uses, diags
}

func decodeStatus(attrs hcl.Attributes, fallback hcl.Range) (Status, hcl.Diagnostics) {
	raw, diags := attrString(attrs, "status")
	switch raw {
	case "", "current":
		return StatusCurrent, diags
	case "deprecated":
		return StatusDeprecated, diags
	case "obsolete":
		return StatusObsolete, diags
	}
	return StatusCurrent, append(diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid status",
		Detail:   fmt.Sprintf("Status must be \"current\", \"deprecated\" or \"obsolete\", got %q.", raw),
		Subject:  attrRange(attrs, "status", fallback).Ptr(),
	})
}

func decodeType(m *Module, attrs hcl.Attributes, fallback hcl.Range) (*Type, hcl.Diagnostics) {
	name, diags := attrString(attrs, "type")
	if name == "" {
		return nil, diags
	}
	t := &Type{Name: name, Range: attrRange(attrs, "type", fallback), module: m}

	var d hcl.Diagnostics
	t.Path, d = attrString(attrs, "path")
	diags = append(diags, d...)
	t.Enums, d = attrStrings(attrs, "enum")
	diags = append(diags, d...)
	return t, diags
}

func decodeImport(block *hcl.Block) (*Import, hcl.Diagnostics) {
	content, diags := block.Body.Content(importSchema)
	imp := &Import{Module: block.Labels[0], Range: block.DefRange}
	prefix, d := attrString(content.Attributes, "prefix")
	imp.Prefix = prefix
	return imp, append(diags, d...)
}

func decodeTypedef(m *Module, block *hcl.Block) (*Typedef, hcl.Diagnostics) {
	content, diags := block.Body.Content(typedefSchema)
	td := &Typedef{Name: block.Labels[0], Module: m, Range: block.DefRange}

	var d hcl.Diagnostics
	td.Type, d = decodeType(m, content.Attributes, block.DefRange)
	diags = append(diags, d...)
	td.Description, d = attrString(content.Attributes, "description")
	diags = append(diags, d...)
	td.Units, d = attrString(content.Attributes, "units")
	diags = append(diags, d...)
	td.Default, d = attrString(content.Attributes, "default")
	diags = append(diags, d...)
	return td, diags
}

func decodeChildren(m *Module, parent *Node, blocks hcl.Blocks) ([]*Node, hcl.Diagnostics) {
	var nodes []*Node
	var diags hcl.Diagnostics
	for _, block := range blocks {
		n, d := decodeNode(m, parent, block)
		diags = append(diags, d...)
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, diags
}

func decodeGrouping(m *Module, block *hcl.Block) (*Grouping, hcl.Diagnostics) {
	content, diags := block.Body.Content(groupingSchema)
	g := &Grouping{Name: block.Labels[0], Module: m, Range: block.DefRange}

	var d hcl.Diagnostics
	g.Description, d = attrString(content.Attributes, "description")
	diags = append(diags, d...)
	g.Uses, d = decodeUses(content.Attributes)
	diags = append(diags, d...)
	g.Nodes, d = decodeChildren(m, nil, content.Blocks)
	diags = append(diags, d...)
	return g, diags
}

func decodeAugment(m *Module, block *hcl.Block) (*Augment, hcl.Diagnostics) {
	content, diags := block.Body.Content(augmentSchema)
	aug := &Augment{Target: block.Labels[0], Module: m, Range: block.DefRange}

	var d hcl.Diagnostics
	aug.Description, d = attrString(content.Attributes, "description")
	diags = append(diags, d...)
	aug.Uses, d = decodeUses(content.Attributes)
	diags = append(diags, d...)
	aug.Nodes, d = decodeChildren(m, nil, content.Blocks)
	diags = append(diags, d...)
	return aug, diags
}

func decodeDeviation(m *Module, block *hcl.Block) (*Deviation, hcl.Diagnostics) {
	content, diags := block.Body.Content(deviationSchema)
	dev := &Deviation{Target: block.Labels[0], Module: m, Range: block.DefRange}

	var d hcl.Diagnostics
	dev.Deviate, d = attrString(content.Attributes, "deviate")
	diags = append(diags, d...)
	dev.Description, d = attrString(content.Attributes, "description")
	diags = append(diags, d...)
	dev.Type, d = decodeType(m, content.Attributes, block.DefRange)
	diags = append(diags, d...)
	dev.Config, d = attrBool(content.Attributes, "config")
	diags = append(diags, d...)
	dev.Mandatory, d = attrBool(content.Attributes, "mandatory")
	diags = append(diags, d...)

	switch dev.Deviate {
	case DeviateNotSupported, DeviateReplace, "":
	default:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid deviate",
			Detail:   fmt.Sprintf("Deviate must be %q or %q, got %q.", DeviateNotSupported, DeviateReplace, dev.Deviate),
			Subject:  attrRange(content.Attributes, "deviate", block.DefRange).Ptr(),
		})
	}
	return dev, diags
}

func decodeAnnotation(m *Module, block *hcl.Block) (*Annotation, hcl.Diagnostics) {
	attrs, diags := block.Body.JustAttributes()
	ann := &Annotation{
		Target: block.Labels[0],
		Values: make(map[string]cty.Value, len(attrs)),
		Module: m,
		Range:  block.DefRange,
	}
	for name, attr := range attrs {
		val, d := attr.Expr.Value(nil)
		diags = append(diags, d...)
		if !d.HasErrors() {
			ann.Values[name] = val
		}
	}
	return ann, diags
}

func decodeNode(m *Module, parent *Node, block *hcl.Block) (*Node, hcl.Diagnostics) {
	kind := kindByBlock[block.Type]
	content, diags := block.Body.Content(nodeSchemas[kind])

	n := &Node{
		Kind:   kind,
		Name:   block.Labels[0],
		Module: m,
		Parent: parent,
		Range:  block.DefRange,
	}
	attrs := content.Attributes

	var d hcl.Diagnostics
	n.Description, d = attrString(attrs, "description")
	diags = append(diags, d...)
	n.Status, d = decodeStatus(attrs, block.DefRange)
	diags = append(diags, d...)
	n.Config, d = attrBool(attrs, "config")
	diags = append(diags, d...)
	n.Uses, d = decodeUses(attrs)
	diags = append(diags, d...)
	n.Presence, d = attrString(attrs, "presence")
	diags = append(diags, d...)
	n.Units, d = attrString(attrs, "units")
	diags = append(diags, d...)
	n.Default, d = attrString(attrs, "default")
	diags = append(diags, d...)

	if mandatory, d := attrBool(attrs, "mandatory"); mandatory != nil {
		n.Mandatory = *mandatory
	} else {
		diags = append(diags, d...)
	}

	if key, d := attrString(attrs, "key"); key != "" {
		n.Key = strings.Fields(key)
	} else {
		diags = append(diags, d...)
	}

	if kind == KindLeaf || kind == KindLeafList {
		n.Type, d = decodeType(m, attrs, block.DefRange)
		diags = append(diags, d...)
	}

	n.Children, d = decodeChildren(m, n, content.Blocks)
	diags = append(diags, d...)
	return n, diags
}
