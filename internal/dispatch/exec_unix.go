// SPDX-License-Identifier: MPL-2.0

//go:build unix

package dispatch

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"toolforge-cli/pkg/types"

	"golang.org/x/sys/unix"
)

const execSupported = true

// execFunc replaces the current process with a subcommand binary.
// Tests override this to capture the call instead.
var execFunc = unix.Exec

func exitResult(state *os.ProcessState) Result {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Result{ExitCode: types.SignalExitCode(int(ws.Signal())), Signal: ws.Signal()}
	}
	return Result{ExitCode: types.ExitCode(state.ExitCode())}
}

// Reraise terminates the calling process with sig so that its parent sees
// the same signal status the child reported. It returns when sig does not
// terminate a process by default, or when the default action cannot be
// restored; the caller then exits with the 128+N code instead.
func Reraise(sig os.Signal) {
	s, ok := sig.(syscall.Signal)
	if !ok || !terminatesByDefault(s) {
		return
	}
	signal.Reset(s)
	if !restoreDefaultAction(s) {
		return
	}
	// The child already dumped core if it was going to.
	_ = unix.Setrlimit(unix.RLIMIT_CORE, &unix.Rlimit{})
	_ = unix.Kill(unix.Getpid(), s)

	// Another thread may take the signal; give it a moment to land.
	time.Sleep(reraiseGrace)
}

const reraiseGrace = 100 * time.Millisecond

// terminatesByDefault reports whether the default action of sig ends the
// process, with or without a core dump.
func terminatesByDefault(sig syscall.Signal) bool {
	switch sig {
	case unix.SIGCHLD, unix.SIGCONT, unix.SIGURG, unix.SIGWINCH,
		unix.SIGSTOP, unix.SIGTSTP, unix.SIGTTIN, unix.SIGTTOU:
		return false
	}
	return sig > 0
}
