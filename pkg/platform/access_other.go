// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package platform

// CheckExecutable always succeeds: without execute permissions the
// extension decides, see IsExecutable.
func CheckExecutable(string) error {
	return nil
}
