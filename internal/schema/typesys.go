package schema

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
)

var builtinTypes = map[string]bool{
	"string":      true,
	"boolean":     true,
	"empty":       true,
	"binary":      true,
	"int8":        true,
	"int16":       true,
	"int32":       true,
	"int64":       true,
	"uint8":       true,
	"uint16":      true,
	"uint32":      true,
	"uint64":      true,
	"decimal64":   true,
	"enumeration": true,
	"leafref":     true,
	"identityref": true,
	"union":       true,
}

// IsBuiltinType reports whether name is one of the engine's built-in types.
func IsBuiltinType(name string) bool {
	return builtinTypes[name]
}

// splitQName splits `prefix:name` into its parts. The prefix is empty for
// unqualified names.
func splitQName(qname string) (string, string) {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return qname[:i], qname[i+1:]
	}
	return "", qname
}

// moduleForPrefix maps a prefix used inside m to the module it designates.
// An empty prefix or m's own prefix designate m itself.
func (c *Context) moduleForPrefix(m *Module, prefix string) *Module {
	if prefix == "" || prefix == m.Prefix {
		return m
	}
	for _, imp := range m.Imports {
		if imp.Prefix == prefix {
			imp.used = true
			return imp.Target
		}
	}
	return nil
}

// resolveType binds a type to its typedef chain and checks built-in
// constraints. Types are shared between grouping instances, so each one is
// resolved only once.
func (c *Context) resolveType(t *Type, stack []*Typedef) {
	if t == nil || t.resolved {
		return
	}
	t.resolved = true

	if IsBuiltinType(t.Name) {
		c.checkBuiltin(t)
		return
	}

	prefix, name := splitQName(t.Name)
	owner := c.moduleForPrefix(t.module, prefix)
	if owner == nil {
		c.errorf(t.Range, "Unknown prefix", "The prefix %q in type %q is not the module's own prefix or an imported one.", prefix, t.Name)
		return
	}

	td, ok := owner.Typedefs[name]
	if !ok {
		c.errorf(t.Range, "Unknown type", "Type %q is neither a built-in type nor a typedef of module %q.", t.Name, owner.Name)
		return
	}

	for _, seen := range stack {
		if seen == td {
			c.errorf(td.Range, "Typedef cycle", "Typedef %q refers back to itself.", td.Name)
			return
		}
	}

	t.Typedef = td
	c.resolveType(td.Type, append(stack[:len(stack):len(stack)], td))
}

func (c *Context) checkBuiltin(t *Type) {
	switch t.Name {
	case "leafref":
		if t.Path == "" {
			c.errorf(t.Range, "Missing leafref path", "A leafref type needs a \"path\" attribute.")
		}
	case "enumeration":
		if len(t.Enums) == 0 {
			c.errorf(t.Range, "Missing enumeration values", "An enumeration type needs a non-empty \"enum\" list.")
		}
	}
	if t.Path != "" && t.Name != "leafref" {
		c.addDiags(&hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  "Ignored path",
			Detail:   "The \"path\" attribute only applies to leafref types.",
			Subject:  t.Range.Ptr(),
		})
	}
}
