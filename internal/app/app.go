package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/schematree/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	errW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// NewApp is the constructor for the main application. Trees go to outW;
// diagnostics and logs go to errW. When no modules are given the compiled-in
// renderers are registered.
func NewApp(outW, errW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Renderer modules registered.", "count", len(modules), "formats", reg.Formats())

	var required []string
	for _, out := range cfg.Outputs.Requested() {
		required = append(required, out.Format)
	}
	if err := reg.ValidateFormats(required...); err != nil {
		// This is a programmer error (a requested format with no compiled-in renderer), so we panic.
		panic(err)
	}

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		registry: reg,
		config:   cfg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
