package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/schematree/internal/app"
	"github.com/specialistvlad/schematree/internal/config"
)

// EnvModuleDir names the environment variable holding the default module directory.
const EnvModuleDir = "SCHEMATREE_MODULE_DIR"

// Exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsageError = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) *ExitError {
	return &ExitError{Code: ExitUsageError, Message: err.Error()}
}

type flags struct {
	text, html, markdown, annot string

	moduleDir   string
	annotDir    string
	annotPrefix string
	annotFiles  []string
	baseDir     string
	searchPaths []string

	verbose     bool
	logLevel    string
	logFormat   string
	color       string
	diagnostics string
	configPath  string
}

func newCommand(f *flags, run func(args []string)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schematree [flags] [MODULE_FILE...]",
		Short: "Render validated schema modules as trees",
		Long: `schematree loads schema modules, validates them against each other and
writes tree views in one or more formats. Without explicit module files the
module directory is scanned. Without format flags the text tree is written
to standard output. A destination of "-" means standard output.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run(args)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.text, "text", "", "write the text tree to `PATH` (- for stdout)")
	fs.StringVar(&f.html, "html", "", "write the HTML tree to `PATH` (- for stdout)")
	fs.StringVar(&f.markdown, "markdown", "", "write the markdown tree and deviation report to `PATH` (- for stdout)")
	fs.StringVar(&f.annot, "annot", "", "write the annotated tree to `PATH` (- for stdout)")

	fs.StringVarP(&f.moduleDir, "module-dir", "d", "", "directory scanned for module files (default $"+EnvModuleDir+" or \"models\")")
	fs.StringVar(&f.annotDir, "annot-dir", "", "directory scanned for annotation modules (default <module-dir>/annotations)")
	fs.StringVar(&f.annotPrefix, "annot-prefix", "", "file name prefix of annotation modules (default \""+app.DefaultAnnotPrefix+"\")")
	fs.StringArrayVar(&f.annotFiles, "annot-file", nil, "explicit annotation module file (repeatable)")
	fs.StringVar(&f.baseDir, "base-dir", "", "baseline directory for the markdown deviation report")
	fs.StringArrayVarP(&f.searchPaths, "search-path", "p", nil, "directory searched for imported modules (repeatable)")

	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print warnings and progress")
	fs.StringVar(&f.logLevel, "log-level", "", "logging level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log output format: text or json")
	fs.StringVar(&f.color, "color", "", "colored diagnostics: auto, on or off")
	fs.StringVar(&f.diagnostics, "diagnostics", "", "diagnostics style: line or pretty")
	fs.StringVar(&f.configPath, "config", "", "project file (default: "+config.FileName+" found upwards from the working directory)")
	return cmd
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var f flags
	var positional []string
	ran := false
	cmd := newCommand(&f, func(args []string) {
		ran = true
		positional = args
	})
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	if err := cmd.Execute(); err != nil {
		return nil, false, usageError(err)
	}
	if !ran {
		// Help was requested.
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.")

	file, err := loadProjectFile(f.configPath)
	if err != nil {
		return nil, false, usageError(err)
	}

	cfg := fromFile(file)
	cfg.ModuleDir = firstNonEmpty(cfg.ModuleDir, os.Getenv(EnvModuleDir))
	applyFlags(&cfg, cmd, &f, positional)

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError(err)
	}

	slog.Debug("CLI parser finished successfully.", "config", appConfig)
	return appConfig, false, nil
}

func loadProjectFile(explicit string) (*config.File, error) {
	path := explicit
	if path == "" {
		found, ok, err := config.Find(".")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		path = found
	}

	file, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	for _, key := range file.Undecoded {
		slog.Warn("Unknown key in project file.", "file", file.Path, "key", key)
	}
	slog.Debug("Project file loaded.", "file", file.Path)
	return file, nil
}

func fromFile(file *config.File) app.Config {
	if file == nil {
		return app.Config{}
	}
	return app.Config{
		ModuleFiles:       file.Modules.Files,
		ModuleDir:         file.Modules.Dir,
		SearchPaths:       file.Modules.SearchPath,
		AnnotFiles:        file.Annotations.Files,
		AnnotDir:          file.Annotations.Dir,
		AnnotPrefix:       file.Annotations.Prefix,
		BaseDir:           file.Markdown.BaseDir,
		Outputs:           app.Outputs(file.Output),
		Verbose:           file.Log.Verbose,
		LogLevel:          file.Log.Level,
		LogFormat:         file.Log.Format,
		Color:             file.Diagnostics.Color,
		DiagnosticsFormat: file.Diagnostics.Format,
	}
}

// applyFlags overrides cfg with every flag given on the command line.
// Requesting any format on the command line replaces the file's outputs.
func applyFlags(cfg *app.Config, cmd *cobra.Command, f *flags, positional []string) {
	changed := cmd.Flags().Changed

	if len(positional) > 0 {
		cfg.ModuleFiles = positional
	}
	if changed("text") || changed("html") || changed("markdown") || changed("annot") {
		cfg.Outputs = app.Outputs{Text: f.text, HTML: f.html, Markdown: f.markdown, Annot: f.annot}
	}

	setString := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}
	setString("module-dir", &cfg.ModuleDir, f.moduleDir)
	setString("annot-dir", &cfg.AnnotDir, f.annotDir)
	setString("annot-prefix", &cfg.AnnotPrefix, f.annotPrefix)
	setString("base-dir", &cfg.BaseDir, f.baseDir)
	setString("log-level", &cfg.LogLevel, f.logLevel)
	setString("log-format", &cfg.LogFormat, f.logFormat)
	setString("color", &cfg.Color, f.color)
	setString("diagnostics", &cfg.DiagnosticsFormat, f.diagnostics)

	if changed("annot-file") {
		cfg.AnnotFiles = f.annotFiles
	}
	if changed("search-path") {
		cfg.SearchPaths = f.searchPaths
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
