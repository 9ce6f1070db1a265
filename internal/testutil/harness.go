package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/schematree/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an application run.
type HarnessResult struct {
	// Dir is the temporary directory the files were written to.
	Dir    string
	Stdout string
	// Stderr carries diagnostics and log output.
	Stderr string
	Err    error
}

// RunApp writes files below a temporary directory, builds the configuration
// with configure (which receives that directory) and runs the application
// with a background context.
func RunApp(t *testing.T, files map[string]string, configure func(dir string) app.Config) *HarnessResult {
	t.Helper()
	return RunAppWithContext(context.Background(), t, files, configure)
}

// RunAppWithContext is RunApp with a caller-provided context.
func RunAppWithContext(ctx context.Context, t *testing.T, files map[string]string, configure func(dir string) app.Config) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	cfg, err := app.NewConfig(configure(dir))
	require.NoError(t, err)

	stdout := &SafeBuffer{}
	stderr := &SafeBuffer{}

	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("application panicked | %v", r)
			}
		}()
		runErr = app.NewApp(stdout, stderr, cfg).Run(ctx)
	}()

	if os.Getenv("SCHEMATREE_TEST_LOGS") == "true" {
		t.Logf("--- stderr for %s ---\n%s", t.Name(), stderr.String())
	}

	return &HarnessResult{
		Dir:    dir,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Err:    runErr,
	}
}
