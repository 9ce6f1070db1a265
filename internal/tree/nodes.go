package tree

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/specialistvlad/schematree/internal/schema"
)

// OwnNodes drops nodes contributed to m's tree by augments of other modules;
// those belong to the augmenting module's output.
func OwnNodes(nodes []*schema.Node, m *schema.Module) []*schema.Node {
	var out []*schema.Node
	for _, n := range nodes {
		if n.Module == m {
			out = append(out, n)
		}
	}
	return out
}

// Children returns the children of n that are printed as part of module m.
// Nodes of m keep only their own children; nodes of other modules (augment
// sections) keep all of theirs.
func Children(n *schema.Node, m *schema.Module) []*schema.Node {
	if n.Module != m {
		return n.Children
	}
	return OwnNodes(n.Children, n.Module)
}

// ForeignAugments returns the resolved augments of m that target another
// module's tree.
func ForeignAugments(m *schema.Module) []*schema.Augment {
	var out []*schema.Augment
	for _, aug := range m.Augments {
		if aug.TargetNode != nil && aug.TargetNode.Module != m {
			out = append(out, aug)
		}
	}
	return out
}

// StatusMarker is "x" for deprecated nodes and "+" otherwise.
func StatusMarker(n *schema.Node) string {
	if n.Status == schema.StatusDeprecated {
		return "x"
	}
	return "+"
}

// Flags is "rw" for configuration and "ro" for state data.
func Flags(n *schema.Node) string {
	if n.IsConfig() {
		return "rw"
	}
	return "ro"
}

// Label is the node name, prefixed when n does not belong to home, with its
// kind-specific decoration.
func Label(n *schema.Node, home *schema.Module) string {
	name := n.Name
	if n.Module != home {
		name = n.Module.Prefix + ":" + name
	}

	switch n.Kind {
	case schema.KindChoice:
		name = "(" + name + ")"
		if !n.Mandatory {
			name += "?"
		}
	case schema.KindCase:
		name = ":(" + name + ")"
	case schema.KindContainer:
		if n.Presence != "" {
			name += "!"
		}
	case schema.KindList, schema.KindLeafList:
		name += "*"
	case schema.KindLeaf:
		if !n.Mandatory && !n.IsKey() {
			name += "?"
		}
	}
	return name
}

// Column is the key list of a list or the type of a leaf.
func Column(n *schema.Node) string {
	switch n.Kind {
	case schema.KindList:
		if len(n.Key) > 0 {
			return "[" + strings.Join(n.Key, " ") + "]"
		}
	case schema.KindLeaf, schema.KindLeafList:
		return TypeName(n.Type)
	}
	return ""
}

// TypeName renders a type statement. Direct leafrefs show their path.
func TypeName(t *schema.Type) string {
	if t == nil {
		return ""
	}
	if t.Typedef == nil && t.Name == "leafref" {
		return "-> " + t.Path
	}
	return t.Name
}

// AnnotationValue is one key of an annotation, JSON-encoded.
type AnnotationValue struct {
	Key   string
	Value string
}

// AnnotationValues flattens the annotations attached to n by any of the
// modules in from, ordered by annotating module and then key.
func AnnotationValues(n *schema.Node, from []*schema.Module) ([]AnnotationValue, error) {
	var out []AnnotationValue
	for _, ann := range n.Annotations {
		if !slices.Contains(from, ann.Module) {
			continue
		}
		keys := make([]string, 0, len(ann.Values))
		for k := range ann.Values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			v := ann.Values[k]
			raw, err := ctyjson.Marshal(v, v.Type())
			if err != nil {
				return nil, fmt.Errorf("annotation %s:%s on %s: %w", ann.Module.Prefix, k, n.SchemaPath(), err)
			}
			out = append(out, AnnotationValue{Key: ann.Module.Prefix + ":" + k, Value: string(raw)})
		}
	}
	return out, nil
}
