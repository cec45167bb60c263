// SPDX-License-Identifier: MPL-2.0

//go:build unix

package platform

import "golang.org/x/sys/unix"

// CheckExecutable reports whether the current user may execute path, using
// the real user and group IDs the way the shell does.
func CheckExecutable(path string) error {
	return unix.Access(path, unix.X_OK)
}
