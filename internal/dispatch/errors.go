// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"fmt"
	"slices"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean" suggestion.
const maxSuggestDistance = 3

var (
	// ErrCommandNotFound is returned when a short name has no entry in the command table.
	ErrCommandNotFound = errors.New("command not found")

	// ErrExecFailed is returned when a resolved executable could not be launched.
	ErrExecFailed = errors.New("exec failed")
)

type (
	// CommandNotFoundError reports the name that was requested and,
	// when one is close, a known name the user probably meant.
	CommandNotFoundError struct {
		Name       string
		Suggestion string
	}

	// ExecFailedError wraps the OS error from launching Path.
	ExecFailedError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// Unwrap returns ErrCommandNotFound for errors.Is.
func (e *CommandNotFoundError) Unwrap() error { return ErrCommandNotFound }

// Error implements the error interface.
func (e *ExecFailedError) Error() string {
	return fmt.Sprintf("failed to execute %s: %v", e.Path, e.Err)
}

// Unwrap returns both ErrExecFailed and the underlying OS error.
func (e *ExecFailedError) Unwrap() []error { return []error{ErrExecFailed, e.Err} }

// Suggest returns the known name closest to name by edit distance, or ""
// when nothing is within maxSuggestDistance. Ties go to the name that sorts first.
func Suggest(name string, known []string) string {
	sorted := slices.Sorted(slices.Values(known))

	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range sorted {
		if candidate == name {
			continue
		}
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDistance {
			bestDistance = d
			best = candidate
		}
	}
	return best
}
