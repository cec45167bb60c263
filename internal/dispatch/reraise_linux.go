// SPDX-License-Identifier: MPL-2.0

//go:build linux && !mips && !mipsle && !mips64 && !mips64le

package dispatch

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// sigsetSize is the kernel sigset_t size, 64 signals.
const sigsetSize = 8

// restoreDefaultAction sets the disposition of sig to SIG_DFL. The Go
// runtime keeps its own handler installed for every signal and only dies
// from HUP, INT and TERM, so the action is replaced underneath it. An
// all-zero kernel sigaction is SIG_DFL with no flags and an empty mask on
// every architecture, whatever its field order.
func restoreDefaultAction(sig syscall.Signal) bool {
	if sig == unix.SIGKILL {
		return true
	}
	var act [4]uint64
	_, _, errno := unix.RawSyscall6(
		unix.SYS_RT_SIGACTION,
		uintptr(sig),
		uintptr(unsafe.Pointer(&act)),
		0,
		sigsetSize,
		0, 0,
	)
	return errno == 0
}
