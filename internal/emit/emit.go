// Package emit writes renderer output to its destination. File destinations
// are written atomically: output goes to a temporary sibling file that
// replaces the destination only once rendering succeeded.
package emit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/specialistvlad/schematree/internal/ctxlog"
)

// Stdout is the destination token for standard output.
const Stdout = "-"

// tempSuffix is appended to the destination base name for the temp file.
const tempSuffix = ".tmp-*"

// RenderFunc writes one rendering into w.
type RenderFunc func(w io.Writer) error

// To renders into dest. The Stdout token writes straight into stdout, which
// cannot be rolled back; any other value is treated as a file path and
// written with WriteAtomic.
func To(ctx context.Context, dest string, stdout io.Writer, render RenderFunc) error {
	if dest == Stdout {
		ctxlog.FromContext(ctx).Debug("Rendering to standard output.")
		return render(stdout)
	}
	return WriteAtomic(ctx, dest, render)
}

// WriteAtomic writes render's output to a temporary file next to dest and
// renames it over dest on success. On error, panic or cancellation the
// temporary file is removed and dest is left exactly as it was.
func WriteAtomic(ctx context.Context, dest string, render RenderFunc) (err error) {
	logger := ctxlog.FromContext(ctx)

	mode := fs.FileMode(0o644)
	if info, statErr := os.Stat(dest); statErr == nil {
		if info.IsDir() {
			return fmt.Errorf("destination %s is a directory", dest)
		}
		mode = info.Mode().Perm()
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", dest, statErr)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+tempSuffix)
	if err != nil {
		return fmt.Errorf("create temporary file for %s: %w", dest, err)
	}
	tmpPath := tmp.Name()
	logger.Debug("Writing to temporary file.", "temp", tmpPath, "destination", dest)

	committed := false
	defer func() {
		if committed {
			return
		}
		_ = tmp.Close()
		if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			logger.Warn("Failed to remove temporary file.", "temp", tmpPath, "error", rmErr)
		}
	}()

	if err := render(tmp); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmpPath, dest, err)
	}

	committed = true
	return nil
}
