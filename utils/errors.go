package utils

import (
	"errors"
	"fmt"
	"os/exec"
)

// Exit codes of the driver. Tool failures surface the tool's own exit code.
const (
	ExitUsage        = 1
	ExitMissingInput = 66
	ExitDependency   = 127
)

// ExitError carries the process exit code a fatal pipeline error maps to.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// MissingInput builds the fatal error used when an upstream artifact a
// stage strictly needs is absent or empty.
func MissingInput(format string, args ...any) error {
	return &ExitError{Code: ExitMissingInput, Err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error to the code the process should exit with: an
// ExitError's own code, a failed external tool's exit code, else 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var xe *ExitError
	if errors.As(err, &xe) {
		return xe.Code
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if code := ee.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
