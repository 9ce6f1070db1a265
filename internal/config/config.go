package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the project file looked up by Find.
const FileName = "schematree.toml"

// File is the decoded project file. Relative paths are resolved against the
// directory holding the file.
type File struct {
	Modules     Modules     `toml:"modules"`
	Annotations Annotations `toml:"annotations"`
	Markdown    Markdown    `toml:"markdown"`
	Output      Output      `toml:"output"`
	Log         Log         `toml:"log"`
	Diagnostics Diagnostics `toml:"diagnostics"`

	// Path is the file the values were read from.
	Path string `toml:"-"`
	// Undecoded lists keys present in the file that no field consumed.
	Undecoded []string `toml:"-"`
}

type Modules struct {
	Dir        string   `toml:"dir"`
	Files      []string `toml:"files"`
	SearchPath []string `toml:"search_path"`
}

type Annotations struct {
	Dir    string   `toml:"dir"`
	Prefix string   `toml:"prefix"`
	Files  []string `toml:"files"`
}

type Markdown struct {
	BaseDir string `toml:"base_dir"`
}

// Output maps each format to its destination; "-" is standard output.
type Output struct {
	Text     string `toml:"text"`
	HTML     string `toml:"html"`
	Markdown string `toml:"markdown"`
	Annot    string `toml:"annot"`
}

type Log struct {
	Level   string `toml:"level"`
	Format  string `toml:"format"`
	Verbose bool   `toml:"verbose"`
}

type Diagnostics struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// Find walks up from startDir to locate the project file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the project file at path.
func Load(path string) (*File, error) {
	var f File
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	f.Path = path
	for _, key := range meta.Undecoded() {
		f.Undecoded = append(f.Undecoded, key.String())
	}
	f.resolvePaths(filepath.Dir(path))
	return &f, nil
}

func (f *File) resolvePaths(root string) {
	abs := func(p string) string {
		if p == "" || p == "-" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	absAll := func(ps []string) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, abs(p))
		}
		return out
	}

	f.Modules.Dir = abs(f.Modules.Dir)
	f.Modules.Files = absAll(f.Modules.Files)
	f.Modules.SearchPath = absAll(f.Modules.SearchPath)
	f.Annotations.Dir = abs(f.Annotations.Dir)
	f.Annotations.Files = absAll(f.Annotations.Files)
	f.Markdown.BaseDir = abs(f.Markdown.BaseDir)
	f.Output.Text = abs(f.Output.Text)
	f.Output.HTML = abs(f.Output.HTML)
	f.Output.Markdown = abs(f.Output.Markdown)
	f.Output.Annot = abs(f.Output.Annot)
}
