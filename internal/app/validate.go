package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/schematree/internal/ctxlog"
	"github.com/specialistvlad/schematree/internal/diagnostics"
)

// Validate runs the context-wide validation, prunes every module of the
// sequence and prints the diagnostics recorded since the previous call.
// Errors are always printed, warnings only in verbose mode. A
// *ValidationError is returned when any new diagnostic is an error.
func (p *Pipeline) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Validating context.", "modules", len(p.modules))

	p.sctx.Validate()
	for _, m := range p.modules {
		if err := p.sctx.Prune(m); err != nil {
			return err
		}
	}

	all := p.sctx.Diagnostics()
	report := diagnostics.Classify(all[p.reported:])
	p.reported = len(all)

	if _, err := p.printer.Print(report); err != nil {
		return fmt.Errorf("failed to print diagnostics: %w", err)
	}
	logger.Info("Validation finished.", "errors", len(report.Errors), "warnings", len(report.Warnings))

	if report.HasErrors() {
		return &ValidationError{Errors: len(report.Errors), Warnings: len(report.Warnings)}
	}
	return nil
}
