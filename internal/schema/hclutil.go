package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// attrString decodes an optional string attribute.
func attrString(attrs hcl.Attributes, name string) (string, hcl.Diagnostics) {
	attr, ok := attrs[name]
	if !ok {
		return "", nil
	}
	var s string
	diags := gohcl.DecodeExpression(attr.Expr, nil, &s)
	return s, diags
}

// attrBool decodes an optional bool attribute; nil means "not set".
func attrBool(attrs hcl.Attributes, name string) (*bool, hcl.Diagnostics) {
	attr, ok := attrs[name]
	if !ok {
		return nil, nil
	}
	var b bool
	diags := gohcl.DecodeExpression(attr.Expr, nil, &b)
	if diags.HasErrors() {
		return nil, diags
	}
	return &b, diags
}

// attrStrings decodes an optional list-of-strings attribute.
func attrStrings(attrs hcl.Attributes, name string) ([]string, hcl.Diagnostics) {
	attr, ok := attrs[name]
	if !ok {
		return nil, nil
	}
	var list []string
	diags := gohcl.DecodeExpression(attr.Expr, nil, &list)
	return list, diags
}

// attrRange returns the source range of an attribute, or fallback when the
// attribute is absent.
func attrRange(attrs hcl.Attributes, name string, fallback hcl.Range) hcl.Range {
	if attr, ok := attrs[name]; ok {
		return attr.Range
	}
	return fallback
}
