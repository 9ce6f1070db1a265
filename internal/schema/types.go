// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// FileExtension is the suffix of schema module files.
const FileExtension = ".hcl"

// ModuleKind tells schema modules apart from annotation modules.
type ModuleKind int

const (
	// KindSchema is a primary module declaring data nodes.
	KindSchema ModuleKind = iota
	// KindAnnotation is a module that only annotates other modules' nodes.
	KindAnnotation
)

func (k ModuleKind) String() string {
	if k == KindAnnotation {
		return "annotation"
	}
	return "module"
}

// NodeKind is the statement a Node was declared with.
type NodeKind int

const (
	KindContainer NodeKind = iota
	KindList
	KindLeaf
	KindLeafList
	KindChoice
	KindCase
)

var nodeKindNames = map[NodeKind]string{
	KindContainer: "container",
	KindList:      "list",
	KindLeaf:      "leaf",
	KindLeafList:  "leaf-list",
	KindChoice:    "choice",
	KindCase:      "case",
}

func (k NodeKind) String() string {
	return nodeKindNames[k]
}

// IsData reports whether nodes of this kind appear in data paths. Choices
// and cases only exist in the schema tree.
func (k NodeKind) IsData() bool {
	return k != KindChoice && k != KindCase
}

// CanHoldChildren reports whether the kind may have child nodes.
func (k NodeKind) CanHoldChildren() bool {
	return k != KindLeaf && k != KindLeafList
}

// Status is the lifecycle status of a definition.
type Status int

const (
	StatusCurrent Status = iota
	StatusDeprecated
	StatusObsolete
)

func (s Status) String() string {
	switch s {
	case StatusDeprecated:
		return "deprecated"
	case StatusObsolete:
		return "obsolete"
	}
	return "current"
}

// Module is the in-memory representation of one schema or annotation file.
type Module struct {
	Name         string
	Kind         ModuleKind
	Prefix       string
	Namespace    string
	Revision     string
	Organization string
	Description  string
	FilePath     string
	DeclRange    hcl.Range

	Imports     []*Import
	Typedefs    map[string]*Typedef
	Groupings   map[string]*Grouping
	Nodes       []*Node
	Uses        []*Uses
	Augments    []*Augment
	Deviations  []*Deviation
	Annotations []*Annotation

	validated bool
	pruned    bool
}

// Validated reports whether the context-wide validation has processed the module.
func (m *Module) Validated() bool { return m.validated }

// Pruned reports whether the module has been pruned and is safe to render.
func (m *Module) Pruned() bool { return m.pruned }

// Import is an `import` block.
type Import struct {
	Module string
	Prefix string
	Range  hcl.Range
	Target *Module
	used   bool
}

// Typedef is a named, reusable type.
type Typedef struct {
	Name        string
	Type        *Type
	Description string
	Units       string
	Default     string
	Module      *Module
	Range       hcl.Range
}

// Type is the type statement of a leaf, leaf-list or typedef.
type Type struct {
	Name  string
	Path  string   // leafref only
	Enums []string // enumeration only
	Range hcl.Range

	// Typedef is set when Name refers to a typedef rather than a built-in type.
	Typedef  *Typedef
	module   *Module
	resolved bool
}

// Base returns the built-in type this type ultimately resolves to.
func (t *Type) Base() *Type {
	seen := map[*Type]bool{}
	cur := t
	for cur != nil && cur.Typedef != nil && !seen[cur] {
		seen[cur] = true
		cur = cur.Typedef.Type
	}
	return cur
}

// Grouping is a reusable set of nodes instantiated by `uses`.
type Grouping struct {
	Name        string
	Description string
	Nodes       []*Node
	Uses        []*Uses
	Module      *Module
	Range       hcl.Range
}

// Uses is one grouping reference from a `uses` attribute.
type Uses struct {
	Grouping string
	Range    hcl.Range
}

// Augment adds nodes to a tree defined elsewhere.
type Augment struct {
	Target      string
	Description string
	Nodes       []*Node
	Uses        []*Uses
	Module      *Module
	Range       hcl.Range
	TargetNode  *Node
}

// Deviation describes how an implementation departs from a target node.
type Deviation struct {
	Target      string
	Deviate     string
	Description string
	Type        *Type
	Config      *bool
	Mandatory   *bool
	Module      *Module
	Range       hcl.Range
	TargetNode  *Node
}

// Deviate values understood by the engine.
const (
	DeviateNotSupported = "not-supported"
	DeviateReplace      = "replace"
)

// Annotation attaches free-form metadata to a node of another module.
type Annotation struct {
	Target     string
	Values     map[string]cty.Value
	Module     *Module
	Range      hcl.Range
	TargetNode *Node
}

// Node is a data-definition statement.
type Node struct {
	Kind        NodeKind
	Name        string
	Description string
	Status      Status
	Config      *bool
	Mandatory   bool
	Presence    string
	Key         []string
	Type        *Type
	Units       string
	Default     string

	Module   *Module
	Parent   *Node
	Children []*Node
	Uses     []*Uses
	Range    hcl.Range

	// Ref is the resolved target of a leafref.
	Ref *Node
	// Deviations and Annotations are attached during validation.
	Deviations   []*Deviation
	Annotations  []*Annotation
	NotSupported bool
}

// IsConfig returns the effective config property, inherited from the parent
// when not set on the node itself.
func (n *Node) IsConfig() bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Config != nil {
			return *cur.Config
		}
	}
	return true
}

// IsKey reports whether the node is a key leaf of its parent list.
func (n *Node) IsKey() bool {
	if n.Kind != KindLeaf {
		return false
	}
	parent := n.DataParent()
	if parent == nil || parent.Kind != KindList {
		return false
	}
	for _, k := range parent.Key {
		if k == n.Name {
			return true
		}
	}
	return false
}

// DataParent returns the closest ancestor that appears in data paths.
func (n *Node) DataParent() *Node {
	p := n.Parent
	for p != nil && !p.Kind.IsData() {
		p = p.Parent
	}
	return p
}

// Child returns the direct child with the given name, if any.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SchemaPath returns the absolute, prefixed path of the node in the schema
// tree, including choices and cases.
func (n *Node) SchemaPath() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent {
		parts = append(parts, cur.Module.Prefix+":"+cur.Name)
	}
	path := ""
	for i := len(parts) - 1; i >= 0; i-- {
		path += "/" + parts[i]
	}
	return path
}

// DataPath returns the absolute path of the node without choice and case
// steps and without prefixes. It is the identity used to compare trees.
func (n *Node) DataPath() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Kind.IsData() {
			parts = append(parts, cur.Name)
		}
	}
	path := ""
	for i := len(parts) - 1; i >= 0; i-- {
		path += "/" + parts[i]
	}
	return path
}
