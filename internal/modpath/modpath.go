// Package modpath derives the directory lists the markdown renderer uses to
// locate the current module tree and the baseline tree it is compared with.
package modpath

import (
	"path/filepath"
	"strings"
)

// DefaultBaseDir is the baseline location outside of a vendor layout.
const DefaultBaseDir = "/usr/share/schematree/base"

// vendorDir is the path element that marks a vendor layout.
const vendorDir = "vendor"

// Separator joins entries of a path list.
const Separator = ":"

// IsVendorLayout reports whether dir lies inside a vendor directory, i.e.
// whether any element of the cleaned path is "vendor".
func IsVendorLayout(dir string) bool {
	_, ok := vendorRoot(dir)
	return ok
}

// vendorRoot returns the path up to and including the last vendor element.
func vendorRoot(dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	parts := strings.Split(filepath.ToSlash(filepath.Clean(dir)), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] == vendorDir {
			return filepath.FromSlash(strings.Join(parts[:i+1], "/")), true
		}
	}
	return "", false
}

// BaseDir picks the baseline directory. An explicit value always wins. A
// module directory inside a vendor layout uses the "base" directory next to
// its vendor tree; anything else falls back to DefaultBaseDir.
func BaseDir(explicit, moduleDir string) string {
	if explicit != "" {
		return explicit
	}
	if root, ok := vendorRoot(moduleDir); ok {
		return filepath.Join(root, "base")
	}
	return DefaultBaseDir
}

// SearchList returns "dir/common:dir:dir/extensions", or "" for an empty dir.
func SearchList(dir string) string {
	if dir == "" {
		return ""
	}
	return join(filepath.Join(dir, "common"), dir, filepath.Join(dir, "extensions"))
}

// BaseList returns "dir/common:dir", or "" for an empty dir.
func BaseList(dir string) string {
	if dir == "" {
		return ""
	}
	return join(filepath.Join(dir, "common"), dir)
}

// Split turns a path list back into its entries, dropping empty ones.
func Split(list string) []string {
	var out []string
	for _, entry := range strings.Split(list, Separator) {
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

func join(entries ...string) string {
	return strings.Join(entries, Separator)
}
