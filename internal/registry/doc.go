// Package registry provides the central "glue" between the pipeline and the
// output formats.
//
// The Registry maps the format names accepted on the command line (e.g.
// "text", "markdown") to the Renderer values that produce them. Renderers are
// compiled in as modules, each registering itself through Module.Register.
//
// During application startup, the registry is populated once and then
// validated against the set of formats the CLI exposes, so a mismatch between
// flags and compiled-in renderers is caught before any module is loaded.
package registry
