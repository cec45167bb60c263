// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package dispatch

import (
	"errors"
	"os"

	"toolforge-cli/pkg/types"
)

const execSupported = false

var errExecUnsupported = errors.New("process replacement is not supported on this platform")

var execFunc = func(string, []string, []string) error { return errExecUnsupported }

func exitResult(state *os.ProcessState) Result {
	return Result{ExitCode: types.ExitCode(state.ExitCode())}
}

// Reraise is a no-op where child termination is not reported as a signal.
func Reraise(os.Signal) {}
