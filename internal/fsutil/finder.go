// Package fsutil provides file system utility functions used to discover
// schema module files.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindOptions narrows down which files FindModuleFiles returns.
type FindOptions struct {
	// Extension is the required file suffix, e.g. ".hcl". It must not be empty.
	Extension string
	// Prefix, when set, keeps only files whose base name starts with it.
	Prefix string
	// Exclude drops files whose base name starts with it. Ignored when empty.
	Exclude string
	// Recursive descends into subdirectories.
	Recursive bool
}

// FindModuleFiles lists the files below rootPath that match opts, sorted by
// path so that load order is stable across runs. A missing root yields no
// files and no error.
func FindModuleFiles(rootPath string, opts FindOptions) ([]string, error) {
	if opts.Extension == "" {
		panic("extension must not be empty")
	}

	if _, err := os.Stat(rootPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != rootPath && !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if matches(d.Name(), opts) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func matches(name string, opts FindOptions) bool {
	if !strings.HasSuffix(name, opts.Extension) {
		return false
	}
	if opts.Prefix != "" && !strings.HasPrefix(name, opts.Prefix) {
		return false
	}
	if opts.Exclude != "" && strings.HasPrefix(name, opts.Exclude) {
		return false
	}
	return true
}
