// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitSuccess is returned when the umbrella handled the invocation without error.
	ExitSuccess ExitCode = 0
	// ExitFailure is the generic failure code (usage and configuration errors).
	ExitFailure ExitCode = 1
	// ExitExecFailed mirrors the shell convention for "found but could not be executed".
	ExitExecFailed ExitCode = 126
	// ExitCommandNotFound mirrors the shell convention for "command not found".
	ExitCommandNotFound ExitCode = 127
	// signalExitBase is added to a signal number when a child was killed by it
	// and the signal cannot be re-raised.
	signalExitBase ExitCode = 128
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// SignalExitCode returns the conventional 128+N status for a process
// terminated by signal number signo.
func SignalExitCode(signo int) ExitCode {
	return signalExitBase + ExitCode(signo)
}
