// Package tree writes pruned schema modules as indented text trees.
//
// The layout follows the widely used "tree" notation for hierarchical data
// models:
//
//	module: acme-if
//	  +--rw interfaces
//	     +--rw interface* [name]
//	        +--rw name    string
//	        +--rw mtu?    mtu
//	        x--rw peer?   -> ../name
//
// Each line carries a status marker (`+` current, `x` deprecated), access
// flags (`rw` configuration, `ro` state), the node name with its decoration
// (`?` optional, `*` list, `!` presence container, `(name)` choice,
// `:(name)` case) and a type column aligned across siblings.
package tree
