package app

import "fmt"

// ValidationError reports that a validation pass found error diagnostics.
// The diagnostics themselves have already been printed.
type ValidationError struct {
	Errors   int
	Warnings int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s) and %d warning(s)", e.Errors, e.Warnings)
}
