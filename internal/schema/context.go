// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ErrNotValidated is returned when an operation needs a module that the
// context-wide validation has not processed yet.
var ErrNotValidated = errors.New("schema: module has not been validated")

// Options are the run-wide settings shared by everything reading the context.
type Options struct {
	// SearchPaths are the directories searched for imported modules that
	// were not loaded explicitly.
	SearchPaths []string
	Verbose     bool

	// ModulePath and BasePath are colon-separated directory lists used by the
	// markdown renderer to locate the module tree and the baseline tree.
	ModulePath string
	BasePath   string
}

// Context is the shared accumulator of loaded modules and diagnostics.
type Context struct {
	Options Options

	parser  *hclparse.Parser
	modules map[string]*Module
	byFile  map[string]*Module
	order   []*Module
	diags   hcl.Diagnostics
}

// NewContext creates an empty validation context.
func NewContext(opts Options) *Context {
	return &Context{
		Options: opts,
		parser:  hclparse.NewParser(),
		modules: make(map[string]*Module),
		byFile:  make(map[string]*Module),
	}
}

// Diagnostics returns every diagnostic recorded so far, in recording order.
func (c *Context) Diagnostics() hcl.Diagnostics {
	return c.diags
}

// Modules returns every registered module in registration order, including
// modules loaded implicitly to satisfy imports.
func (c *Context) Modules() []*Module {
	return c.order
}

// Module looks up a registered module by name.
func (c *Context) Module(name string) (*Module, bool) {
	m, ok := c.modules[name]
	return m, ok
}

// Files returns the parsed source files keyed by file name, for diagnostic
// writers that print source snippets.
func (c *Context) Files() map[string]*hcl.File {
	return c.parser.Files()
}

func (c *Context) addDiags(diags ...*hcl.Diagnostic) {
	c.diags = append(c.diags, diags...)
}

func (c *Context) errorf(rng hcl.Range, summary, format string, args ...any) {
	c.addDiags(&hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  rng.Ptr(),
	})
}

func (c *Context) warnf(rng hcl.Range, summary, format string, args ...any) {
	c.addDiags(&hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  rng.Ptr(),
	})
}

// Load parses the file at path and registers its module in the context.
// Problems are recorded as diagnostics; the returned module is nil when the
// file could not be turned into a module at all.
func (c *Context) Load(path string) *Module {
	key := filepath.Clean(path)
	if m, ok := c.byFile[key]; ok {
		return m
	}

	file, diags := c.parser.ParseHCLFile(path)
	c.addDiags(diags...)
	if file == nil || diags.HasErrors() {
		return nil
	}

	m, diags := decodeFile(file, path)
	c.addDiags(diags...)
	if m == nil {
		return nil
	}

	if existing, ok := c.modules[m.Name]; ok {
		c.errorf(m.DeclRange, "Duplicate module",
			"Module %q is already loaded from %s.", m.Name, existing.FilePath)
		return nil
	}

	c.modules[m.Name] = m
	c.byFile[key] = m
	c.order = append(c.order, m)
	return m
}

// findInSearchPath looks for `<name>.hcl` in the configured search paths.
func (c *Context) findInSearchPath(name string) (string, bool) {
	for _, dir := range c.Options.SearchPaths {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name+FileExtension)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// Prune strips a validated module down to what renderers need: typedefs,
// groupings, deviated-away and obsolete nodes are removed.
func (c *Context) Prune(m *Module) error {
	if !m.validated {
		return fmt.Errorf("prune %s: %w", m.Name, ErrNotValidated)
	}
	if m.pruned {
		return nil
	}

	m.Typedefs = nil
	m.Groupings = nil
	m.Uses = nil
	m.Nodes = pruneNodes(m.Nodes)
	for _, aug := range m.Augments {
		aug.Uses = nil
		aug.Nodes = pruneNodes(aug.Nodes)
	}
	m.pruned = true
	return nil
}

func pruneNodes(nodes []*Node) []*Node {
	kept := nodes[:0]
	for _, n := range nodes {
		if n.NotSupported || n.Status == StatusObsolete {
			continue
		}
		n.Uses = nil
		n.Children = pruneNodes(n.Children)
		kept = append(kept, n)
	}
	return kept
}
