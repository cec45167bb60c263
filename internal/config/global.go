// SPDX-License-Identifier: MPL-2.0

package config

// homeDirOverride allows tests to override the home directory.
// os.UserHomeDir() doesn't reliably respect HOME on all platforms
// (e.g. Windows uses USERPROFILE).
var homeDirOverride string

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	homeDirOverride = ""
}

// SetHomeDirOverride sets the directory used in place of the user's home
// when building the layered file list.
func SetHomeDirOverride(dir string) {
	homeDirOverride = dir
}
