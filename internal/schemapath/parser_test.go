// internal/schemapath/parser_test.go
package schemapath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		raw          string
		expectErr    bool
		expectedPath *Path
	}{
		{
			name: "absolute prefixed path",
			raw:  "/if:interfaces/if:interface",
			expectedPath: &Path{
				Absolute: true,
				Segments: []Segment{NewPrefixedSegment("if", "interfaces"), NewPrefixedSegment("if", "interface")},
			},
		},
		{
			name: "absolute path without prefixes",
			raw:  "/system/clock",
			expectedPath: &Path{
				Absolute: true,
				Segments: []Segment{NewSegment("system"), NewSegment("clock")},
			},
		},
		{
			name: "relative path",
			raw:  "../../config/mtu",
			expectedPath: &Path{
				Up:       2,
				Segments: []Segment{NewSegment("config"), NewSegment("mtu")},
			},
		},
		{
			name: "names with dashes and dots",
			raw:  "/acme-if:if.v2/x-y",
			expectedPath: &Path{
				Absolute: true,
				Segments: []Segment{NewPrefixedSegment("acme-if", "if.v2"), NewSegment("x-y")},
			},
		},
		{name: "error - empty string", raw: "", expectErr: true},
		{name: "error - bare slash", raw: "/", expectErr: true},
		{name: "error - empty segment", raw: "/a//b", expectErr: true},
		{name: "error - predicate", raw: "/a/b[name='x']", expectErr: true},
		{name: "error - dotdot in the middle", raw: "../a/../b", expectErr: true},
		{name: "error - dotdot in absolute path", raw: "/a/..", expectErr: true},
		{name: "error - relative without dotdot", raw: "a/b", expectErr: true},
		{name: "error - only dotdot", raw: "../..", expectErr: true},
		{name: "error - double prefix", raw: "/a:b:c", expectErr: true},
		{name: "error - leading digit", raw: "/1abc", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(tc.raw)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, p)
			assert.True(t, tc.expectedPath.Equal(p), "parsed path does not match expected path")
		})
	}
}

func TestPath_StringRoundTrip(t *testing.T) {
	for _, raw := range []string{"/if:interfaces/if:interface/if:name", "../name", "../../a/p:b"} {
		assert.Equal(t, raw, MustParse(raw).String())
	}
}

func TestPath_Equal(t *testing.T) {
	var nilPath *Path
	assert.True(t, nilPath.Equal(nil))
	assert.False(t, MustParse("/a").Equal(nil))
	assert.False(t, MustParse("/a").Equal(MustParse("../a")))
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("") })
}
