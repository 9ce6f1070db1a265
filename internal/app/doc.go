// Package app contains the core application logic. It defines the App, its
// configuration and the Pipeline that loads, validates and renders schema
// modules, decoupled from any specific entrypoint like a CLI.
package app
