package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diag(sev hcl.DiagnosticSeverity, summary, detail string, line int) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: sev,
		Summary:  summary,
		Detail:   detail,
		Subject: &hcl.Range{
			Filename: "models/b.hcl",
			Start:    hcl.Pos{Line: line, Column: 3, Byte: 0},
			End:      hcl.Pos{Line: line, Column: 9, Byte: 6},
		},
	}
}

func sample() hcl.Diagnostics {
	return hcl.Diagnostics{
		diag(hcl.DiagWarning, "Unused import", "Module \"b\" never uses prefix \"a\".", 2),
		diag(hcl.DiagError, "Unresolved leafref", "Leafref \"peer\": no such node.", 7),
		diag(hcl.DiagWarning, "Missing module description", "", 1),
	}
}

func TestClassify(t *testing.T) {
	r := Classify(sample())
	require.Len(t, r.Errors, 1)
	require.Len(t, r.Warnings, 2)
	assert.True(t, r.HasErrors())
	assert.Equal(t, "Unused import", r.Warnings[0].Summary)
	assert.Equal(t, "Missing module description", r.Warnings[1].Summary)

	assert.False(t, Classify(nil).HasErrors())
}

func TestPrinter_Line(t *testing.T) {
	testCases := []struct {
		name     string
		verbose  bool
		expected []string
	}{
		{
			name: "errors only when quiet",
			expected: []string{
				`models/b.hcl:7:3: error: Unresolved leafref: Leafref "peer": no such node.`,
			},
		},
		{
			name:    "warnings follow errors when verbose",
			verbose: true,
			expected: []string{
				`models/b.hcl:7:3: error: Unresolved leafref: Leafref "peer": no such node.`,
				`models/b.hcl:2:3: warning: Unused import: Module "b" never uses prefix "a".`,
				`models/b.hcl:1:3: warning: Missing module description`,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPrinter(&buf, PrinterOptions{Verbose: tc.verbose, Color: ColorOff})

			n, err := p.Print(Classify(sample()))
			require.NoError(t, err)
			assert.Equal(t, len(tc.expected), n)
			assert.Equal(t, strings.Join(tc.expected, "\n")+"\n", buf.String())
		})
	}
}

func TestPrinter_WarningsOnlyQuiet(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PrinterOptions{Color: ColorOff})

	n, err := p.Print(Classify(hcl.Diagnostics{diag(hcl.DiagWarning, "List without key", "", 4)}))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, buf.String())
}

func TestPrinter_ColorOn(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PrinterOptions{Color: ColorOn})

	_, err := p.Print(Classify(sample()))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "Unresolved leafref")
}

func TestPrinter_AutoColorOnBuffer(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PrinterOptions{})

	_, err := p.Print(Classify(sample()))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestPrinter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PrinterOptions{Format: FormatPretty, Color: ColorOff})

	n, err := p.Print(Classify(sample()))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "Error: Unresolved leafref")
	assert.Contains(t, buf.String(), "models/b.hcl line 7")
}

func TestPosition_NoSubject(t *testing.T) {
	d := &hcl.Diagnostic{Severity: hcl.DiagError, Summary: "Boom"}
	assert.Equal(t, "<unknown>", Position(d))
	assert.Equal(t, "Boom", Message(d))
}
