package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/schematree/internal/app"
	"github.com/specialistvlad/schematree/internal/cli"
	"github.com/specialistvlad/schematree/internal/registry"
)

// main is the entrypoint for the schematree application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := exitCode(run(ctx, os.Stdout, os.Stderr, os.Args[1:]), os.Stderr)
	stop()
	os.Exit(code)
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	schematree, err := newApp(outW, errW, appConfig)
	if err != nil {
		return err
	}
	return schematree.Run(ctx)
}

// newApp turns the panic NewApp raises on a broken format registry into an error.
func newApp(outW, errW io.Writer, cfg *app.Config, modules ...registry.Module) (a *app.App, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("a critical startup error occurred: %v", r)
		}
	}()
	return app.NewApp(outW, errW, cfg, modules...), nil
}

// exitCode maps an error returned by run to a process exit code, printing a
// message to errW where the diagnostics have not already said it all.
func exitCode(err error, errW io.Writer) int {
	if err == nil {
		return cli.ExitOK
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(errW, exitErr.Message)
		return exitErr.Code
	}

	var verr *app.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(errW, verr.Error())
		return cli.ExitFailure
	}

	fmt.Fprintln(errW, err)
	return cli.ExitFailure
}
