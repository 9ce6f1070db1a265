// internal/schemapath/parser.go
package schemapath

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex parses a single segment, e.g. `name` or `prefix:name`.
var segmentRegex = regexp.MustCompile(`^(?:([a-zA-Z_][a-zA-Z0-9_.-]*):)?([a-zA-Z_][a-zA-Z0-9_.-]*)$`)

// Parse creates a new Path by parsing its string representation.
func Parse(raw string) (*Path, error) {
	if raw == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	if strings.ContainsAny(raw, "[]") {
		return nil, fmt.Errorf("path predicates are not supported: %q", raw)
	}

	p := &Path{}
	rest := raw
	if strings.HasPrefix(rest, "/") {
		p.Absolute = true
		rest = rest[1:]
		if rest == "" {
			return nil, fmt.Errorf("path %q names no node", raw)
		}
	}

	for i, segmentStr := range strings.Split(rest, "/") {
		if segmentStr == "" {
			return nil, fmt.Errorf("path %q contains empty segment", raw)
		}

		if segmentStr == ".." {
			if p.Absolute || i != p.Up {
				return nil, fmt.Errorf("path %q: '..' is only allowed at the start of a relative path", raw)
			}
			p.Up++
			continue
		}

		matches := segmentRegex.FindStringSubmatch(segmentStr)
		if matches == nil {
			return nil, fmt.Errorf("invalid path segment format: %q", segmentStr)
		}
		p.Segments = append(p.Segments, NewPrefixedSegment(matches[1], matches[2]))
	}

	if len(p.Segments) == 0 {
		return nil, fmt.Errorf("path %q names no node", raw)
	}
	if !p.Absolute && p.Up == 0 {
		return nil, fmt.Errorf("relative path %q must start with '..'", raw)
	}

	return p, nil
}

// MustParse is like Parse but panics on error. It is meant for tests and
// package-level constants.
func MustParse(raw string) *Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}
