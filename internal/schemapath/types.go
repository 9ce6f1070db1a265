// internal/schemapath/types.go
package schemapath

// Segment is a single step of a path, e.g. `if:interface`.
type Segment struct {
	Prefix string // empty when the path did not qualify the name.
	Name   string
}

// NewSegment creates a segment without a prefix.
func NewSegment(name string) Segment {
	return Segment{Name: name}
}

// NewPrefixedSegment creates a segment qualified with a module prefix.
func NewPrefixedSegment(prefix, name string) Segment {
	return Segment{Prefix: prefix, Name: name}
}

// HasPrefix returns true if the segment carries an explicit prefix.
func (s Segment) HasPrefix() bool {
	return s.Prefix != ""
}

// Path is the parsed form of a schema node path.
type Path struct {
	Absolute bool
	// Up is the number of leading `..` steps of a relative path.
	Up       int
	Segments []Segment
}
