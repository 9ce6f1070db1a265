// internal/schemapath/doc.go

/*
Package schemapath provides a structured representation of the paths used
inside schema modules to point at other schema nodes: leafref targets,
augment and deviation targets, and annotation targets.

Absolute paths start with a slash and list prefixed node names,
e.g. `/if:interfaces/if:interface/if:name`. Relative paths start with one or
more `..` steps, e.g. `../name` or `../../config/mtu`. The prefix is optional
and defaults to the module the path is written in.

This package only parses and formats paths; resolving them against a module
tree is the job of the schema package.
*/
package schemapath
