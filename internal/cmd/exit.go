// Package cmd provides the quasargen command implementations.
package cmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-quasargen/pkg/generator"
	"github.com/goliatone/go-quasargen/pkg/prompt"
)

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitUsageError indicates missing or invalid arguments and settings.
	ExitUsageError = 2

	// ExitPartialFailure indicates at least one resource failed to generate.
	ExitPartialFailure = 3

	// ExitNotFound indicates a requested resource is not in the document.
	ExitNotFound = 5

	// ExitAborted indicates the user interrupted an interactive prompt.
	ExitAborted = 130
)

// ExitError carries the process exit code of a failed command. Printed is
// set when the command already reported the failure to the user.
type ExitError struct {
	Code    int
	Err     error
	Printed bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitUsageError:
		return "Usage Error"
	case ExitPartialFailure:
		return "Partial Failure"
	case ExitNotFound:
		return "Not Found"
	case ExitAborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// exitError wraps err with the exit code matching its cause.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	code := ExitGeneralError
	switch {
	case errors.Is(err, generator.ErrResourceNotFound), errors.Is(err, generator.ErrNoResources):
		code = ExitNotFound
	case errors.Is(err, prompt.ErrAborted), errors.Is(err, context.Canceled):
		code = ExitAborted
	}
	return &ExitError{Code: code, Err: err}
}
