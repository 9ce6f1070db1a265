package app

import (
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/schematree/internal/diagnostics"
	"github.com/specialistvlad/schematree/internal/emit"
	"github.com/specialistvlad/schematree/modules/annot"
	"github.com/specialistvlad/schematree/modules/html"
	"github.com/specialistvlad/schematree/modules/markdown"
	"github.com/specialistvlad/schematree/modules/text"
)

// DefaultModuleDir is used when neither files nor a module directory are given.
const DefaultModuleDir = "models"

// DefaultAnnotPrefix is the file name prefix of annotation modules.
const DefaultAnnotPrefix = "annot-"

// Outputs holds the destination per format. An empty destination means the
// format was not requested; emit.Stdout writes to standard output.
type Outputs struct {
	Text     string
	HTML     string
	Markdown string
	Annot    string
}

// Output is one requested format and its destination.
type Output struct {
	Format string
	Dest   string
}

// Requested lists the requested outputs in emission order.
func (o Outputs) Requested() []Output {
	var out []Output
	for _, req := range []Output{
		{Format: text.Format, Dest: o.Text},
		{Format: html.Format, Dest: o.HTML},
		{Format: markdown.Format, Dest: o.Markdown},
		{Format: annot.Format, Dest: o.Annot},
	} {
		if req.Dest != "" {
			out = append(out, req)
		}
	}
	return out
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ModuleFiles are explicit primary module files. When empty, ModuleDir
	// is scanned.
	ModuleFiles []string
	ModuleDir   string
	// AnnotFiles are explicit annotation module files. When empty, AnnotDir
	// is scanned for files starting with AnnotPrefix.
	AnnotFiles  []string
	AnnotDir    string
	AnnotPrefix string
	// BaseDir overrides the baseline directory of the markdown report.
	BaseDir     string
	SearchPaths []string

	Outputs Outputs

	Verbose           bool
	LogFormat         string
	LogLevel          string
	Color             string
	DiagnosticsFormat string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModuleDir == "" {
		cfg.ModuleDir = DefaultModuleDir
	}
	if cfg.AnnotDir == "" {
		cfg.AnnotDir = filepath.Join(cfg.ModuleDir, "annotations")
	}
	if cfg.AnnotPrefix == "" {
		cfg.AnnotPrefix = DefaultAnnotPrefix
	}
	if len(cfg.Outputs.Requested()) == 0 {
		cfg.Outputs.Text = emit.Stdout
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
		if cfg.Verbose {
			cfg.LogLevel = "info"
		}
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn' or 'error'", cfg.LogLevel)
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	if cfg.Color == "" {
		cfg.Color = diagnostics.ColorAuto
	}
	switch cfg.Color {
	case diagnostics.ColorAuto, diagnostics.ColorOn, diagnostics.ColorOff:
	default:
		return nil, fmt.Errorf("invalid color mode %q: must be 'auto', 'on' or 'off'", cfg.Color)
	}

	if cfg.DiagnosticsFormat == "" {
		cfg.DiagnosticsFormat = diagnostics.FormatLine
	}
	if cfg.DiagnosticsFormat != diagnostics.FormatLine && cfg.DiagnosticsFormat != diagnostics.FormatPretty {
		return nil, fmt.Errorf("invalid diagnostics format %q: must be 'line' or 'pretty'", cfg.DiagnosticsFormat)
	}

	seen := map[string]string{}
	for _, out := range cfg.Outputs.Requested() {
		if out.Dest == emit.Stdout {
			continue
		}
		clean := filepath.Clean(out.Dest)
		if prev, ok := seen[clean]; ok {
			return nil, fmt.Errorf("formats %s and %s both write to %s", prev, out.Format, out.Dest)
		}
		seen[clean] = out.Format
	}

	return &cfg, nil
}
