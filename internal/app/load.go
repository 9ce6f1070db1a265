package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/specialistvlad/schematree/internal/ctxlog"
	"github.com/specialistvlad/schematree/internal/fsutil"
	"github.com/specialistvlad/schematree/internal/schema"
)

// DiscoverFunc enumerates module files when none were given explicitly.
type DiscoverFunc func() ([]string, error)

// Load loads paths, or the files returned by discover when paths is empty,
// into the context and appends the resulting modules to the sequence. Parse
// and decode problems are recorded as diagnostics; only a failing discovery
// returns an error. The modules loaded by this call are returned.
func (p *Pipeline) Load(ctx context.Context, paths []string, discover DiscoverFunc) ([]*schema.Module, error) {
	logger := ctxlog.FromContext(ctx)

	if len(paths) == 0 && discover != nil {
		found, err := discover()
		if err != nil {
			return nil, fmt.Errorf("failed to discover module files: %w", err)
		}
		logger.Info("Discovered module files.", "count", len(found))
		paths = found
	}

	var loaded []*schema.Module
	for _, path := range paths {
		logger.Debug("Loading module file.", "path", path)
		m := p.sctx.Load(path)
		if m == nil {
			continue
		}
		if slices.Contains(p.modules, m) || slices.Contains(loaded, m) {
			logger.Debug("Module already in sequence.", "module", m.Name, "path", path)
			continue
		}
		loaded = append(loaded, m)
	}

	p.modules = append(p.modules, loaded...)
	logger.Debug("Modules loaded.", "loaded", len(loaded), "total", len(p.modules))
	return loaded, nil
}

// discoverIn returns a DiscoverFunc scanning dir (non-recursively) for
// module files. A missing directory is logged and yields no files.
func discoverIn(ctx context.Context, dir string, opts fsutil.FindOptions) DiscoverFunc {
	return func() ([]string, error) {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			ctxlog.FromContext(ctx).Warn("Module directory does not exist.", "dir", dir)
			return nil, nil
		}
		opts.Extension = schema.FileExtension
		return fsutil.FindModuleFiles(dir, opts)
	}
}
