package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/specialistvlad/schematree/internal/schema"
)

// ErrUnknownFormat is returned when a format name has no registered renderer.
var ErrUnknownFormat = errors.New("registry: unknown output format")

// Renderer produces one output format from a validated, pruned module sequence.
type Renderer interface {
	Emit(ctx context.Context, sctx *schema.Context, modules []*schema.Module, w io.Writer) error
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(ctx context.Context, sctx *schema.Context, modules []*schema.Module, w io.Writer) error

// Emit calls f.
func (f RendererFunc) Emit(ctx context.Context, sctx *schema.Context, modules []*schema.Module, w io.Writer) error {
	return f(ctx, sctx, modules, w)
}

// Module is the interface that all renderer modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the renderers of a single application instance.
type Registry struct {
	formats map[string]Renderer
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		formats: make(map[string]Renderer),
	}
}

// RegisterFormat binds a format name to its renderer.
func (r *Registry) RegisterFormat(name string, renderer Renderer) {
	if _, exists := r.formats[name]; exists {
		panic(fmt.Sprintf("renderer for format '%s' already registered", name))
	}
	slog.Debug("Registering renderer.", "format", name)
	r.formats[name] = renderer
}

// Lookup returns the renderer registered for name.
func (r *Registry) Lookup(name string) (Renderer, error) {
	renderer, ok := r.formats[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return renderer, nil
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateFormats checks that every required format has a renderer.
func (r *Registry) ValidateFormats(required ...string) error {
	var missing []string
	for _, name := range required {
		if _, ok := r.formats[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("registry validation failed: no renderer for %v", missing)
	}
	return nil
}
