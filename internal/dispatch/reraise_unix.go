// SPDX-License-Identifier: MPL-2.0

//go:build unix && !(linux && !mips && !mipsle && !mips64 && !mips64le)

package dispatch

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// restoreDefaultAction reports whether sig kills the process once its
// notification is reset. Here the runtime's own handler stays in place and
// it exits by signal only for HUP, INT and TERM.
func restoreDefaultAction(sig syscall.Signal) bool {
	switch sig {
	case unix.SIGHUP, unix.SIGINT, unix.SIGTERM, unix.SIGKILL:
		return true
	}
	return false
}
