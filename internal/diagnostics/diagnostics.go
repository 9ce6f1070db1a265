// Package diagnostics classifies schema diagnostics and prints them to the
// diagnostics stream.
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/hcl/v2"
	"github.com/mattn/go-isatty"
)

// Output formats for the diagnostics stream.
const (
	FormatLine   = "line"
	FormatPretty = "pretty"
)

// Color modes.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// Report is a set of diagnostics split by severity. Any diagnostic that is
// not an error counts as a warning.
type Report struct {
	Errors   hcl.Diagnostics
	Warnings hcl.Diagnostics
}

// Classify splits diags by severity, keeping their relative order.
func Classify(diags hcl.Diagnostics) Report {
	var r Report
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			r.Errors = append(r.Errors, d)
			continue
		}
		r.Warnings = append(r.Warnings, d)
	}
	return r
}

// HasErrors reports whether the report contains at least one error.
func (r Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// PrinterOptions configure a Printer.
type PrinterOptions struct {
	// Verbose enables printing of warnings. Errors are always printed.
	Verbose bool
	// Format is FormatLine (default) or FormatPretty.
	Format string
	// Color is ColorAuto (default), ColorOn or ColorOff.
	Color string
	// Files supplies parsed sources for FormatPretty snippets.
	Files func() map[string]*hcl.File
}

// Printer writes diagnostics to a stream.
type Printer struct {
	w     io.Writer
	opts  PrinterOptions
	color bool

	errColor  *color.Color
	warnColor *color.Color
	posColor  *color.Color
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, opts PrinterOptions) *Printer {
	if opts.Format == "" {
		opts.Format = FormatLine
	}
	p := &Printer{
		w:         w,
		opts:      opts,
		color:     useColor(w, opts.Color),
		errColor:  color.New(color.FgRed, color.Bold),
		warnColor: color.New(color.FgYellow, color.Bold),
		posColor:  color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.errColor, p.warnColor, p.posColor} {
		if p.color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case ColorOn:
		return true
	case ColorOff:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Print writes every error of r and, in verbose mode, every warning. It
// returns the number of lines written.
func (p *Printer) Print(r Report) (int, error) {
	diags := append(hcl.Diagnostics{}, r.Errors...)
	if p.opts.Verbose {
		diags = append(diags, r.Warnings...)
	}
	if len(diags) == 0 {
		return 0, nil
	}

	if p.opts.Format == FormatPretty {
		var files map[string]*hcl.File
		if p.opts.Files != nil {
			files = p.opts.Files()
		}
		wr := hcl.NewDiagnosticTextWriter(p.w, files, 0, p.color)
		if err := wr.WriteDiagnostics(diags); err != nil {
			return 0, err
		}
		return len(diags), nil
	}

	for i, d := range diags {
		if _, err := fmt.Fprintln(p.w, p.Line(d)); err != nil {
			return i, err
		}
	}
	return len(diags), nil
}

// Line formats one diagnostic as `position: severity: message`.
func (p *Printer) Line(d *hcl.Diagnostic) string {
	severity := p.warnColor.Sprint("warning")
	if d.Severity == hcl.DiagError {
		severity = p.errColor.Sprint("error")
	}
	return fmt.Sprintf("%s: %s: %s", p.posColor.Sprint(Position(d)), severity, Message(d))
}

// Position renders the start of the diagnostic's subject as file:line:col.
func Position(d *hcl.Diagnostic) string {
	if d.Subject == nil {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", d.Subject.Filename, d.Subject.Start.Line, d.Subject.Start.Column)
}

// Message joins summary and detail.
func Message(d *hcl.Diagnostic) string {
	detail := strings.TrimSpace(d.Detail)
	if detail == "" {
		return d.Summary
	}
	return d.Summary + ": " + detail
}
