package cli

import (
	"errors"
)

// Sentinel errors for exit code classification
var (
	// ErrInvalid indicates that at least one document failed validation.
	ErrInvalid = errors.New("validation failed")

	// ErrUsage indicates invalid command usage, flags, or arguments.
	ErrUsage = errors.New("usage error")

	// ErrLoad indicates that a schema, catalog or document could not be loaded.
	ErrLoad = errors.New("load error")
)

// Exit codes
const (
	ExitSuccess = 0
	ExitInvalid = 1
	ExitError   = 2
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalid):
		return ExitInvalid
	default:
		return ExitError
	}
}
