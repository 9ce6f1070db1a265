// Package config reads the optional schematree.toml project file. The file
// supplies defaults for the command-line options of a project; flags given
// on the command line always take precedence.
//
// Example:
//
//	[modules]
//	dir         = "models"
//	search_path = ["third_party/models"]
//
//	[annotations]
//	prefix = "annot-"
//
//	[output]
//	text     = "-"
//	markdown = "docs/tree.md"
//
//	[log]
//	level = "info"
package config
