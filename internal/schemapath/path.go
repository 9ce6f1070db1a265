// internal/schemapath/path.go
package schemapath

import (
	"reflect"
	"strings"
)

// String serializes the Path into its canonical string representation.
func (p *Path) String() string {
	if p == nil {
		return ""
	}

	var sb strings.Builder
	if p.Absolute {
		sb.WriteRune('/')
	}
	for i := 0; i < p.Up; i++ {
		sb.WriteString("../")
	}
	for i, segment := range p.Segments {
		if i > 0 {
			sb.WriteRune('/')
		}
		if segment.HasPrefix() {
			sb.WriteString(segment.Prefix)
			sb.WriteRune(':')
		}
		sb.WriteString(segment.Name)
	}

	return sb.String()
}

// Equal checks for deep equality between two Path pointers.
func (p *Path) Equal(other *Path) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Absolute == other.Absolute && p.Up == other.Up && reflect.DeepEqual(p.Segments, other.Segments)
}
