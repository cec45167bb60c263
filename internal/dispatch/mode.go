// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"fmt"
)

const (
	// ModeExec replaces the umbrella process with the subcommand.
	ModeExec Mode = "exec"
	// ModeSpawn runs the subcommand as a child and forwards its exit status.
	ModeSpawn Mode = "spawn"
)

// ErrInvalidMode is the sentinel error wrapped by InvalidModeError.
var ErrInvalidMode = errors.New("invalid exec mode")

type (
	// Mode selects how a subcommand process is started.
	Mode string

	// InvalidModeError is returned when a Mode is neither exec nor spawn.
	InvalidModeError struct {
		Value Mode
	}
)

// Error implements the error interface.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid exec mode %q (must be %q or %q)", e.Value, ModeExec, ModeSpawn)
}

// Unwrap returns ErrInvalidMode so callers can use errors.Is for programmatic detection.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }

// Validate returns nil if the Mode is known, or an error describing the problem.
func (m Mode) Validate() error {
	switch m {
	case ModeExec, ModeSpawn:
		return nil
	default:
		return &InvalidModeError{Value: m}
	}
}

// String returns the string representation of the Mode.
func (m Mode) String() string { return string(m) }

// DefaultMode is ModeExec where the OS can replace a process image and
// ModeSpawn elsewhere.
func DefaultMode() Mode {
	if execSupported {
		return ModeExec
	}
	return ModeSpawn
}
