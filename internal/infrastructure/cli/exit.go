package cli

import (
	"errors"
	"fmt"

	"github.com/doeshing/axiom-install/internal/domain"
)

// ExitError carries a process exit code out of a command. A nil Err means the
// outcome was already printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return domain.ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return domain.ExitFatal
}

// Reportable reports whether main still has to print err.
func Reportable(err error) bool {
	if err == nil {
		return false
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Err != nil
	}
	return true
}

func outcomeError(outcome domain.Outcome) error {
	if code := outcome.ExitCode(); code != domain.ExitOK {
		return &ExitError{Code: code}
	}
	return nil
}
