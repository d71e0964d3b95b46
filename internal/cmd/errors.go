package cmd

import (
	"errors"

	"github.com/renato0307/shiftclock/internal/domain"
)

// Process exit codes
const (
	ExitOK                = 0
	ExitError             = 1
	ExitInvalidTransition = 2
	ExitConflict          = 3
	ExitNotFound          = 4
	ExitStoreUnavailable  = 5
)

// ExitCode maps an error returned by a command to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrInvalidTransition):
		return ExitInvalidTransition
	case errors.Is(err, domain.ErrConflict):
		return ExitConflict
	case errors.Is(err, domain.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, domain.ErrStoreUnavailable):
		return ExitStoreUnavailable
	default:
		return ExitError
	}
}
