// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// defaultPathExt is used on Windows when PATHEXT is unset or empty.
var defaultPathExt = []string{".com", ".exe", ".bat", ".cmd"}

// ExecutableExtensions returns the lower-cased file extensions that Windows
// treats as executable, parsed from a PATHEXT-style value (";"-separated).
// An empty value yields the built-in defaults.
func ExecutableExtensions(pathext string) []string {
	if strings.TrimSpace(pathext) == "" {
		return append([]string(nil), defaultPathExt...)
	}

	var exts []string
	for _, e := range strings.Split(strings.ToLower(pathext), ";") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	if len(exts) == 0 {
		return append([]string(nil), defaultPathExt...)
	}
	return exts
}

// IsExecutable reports whether a regular file with the given name and mode
// would be run by the operating system identified by goos.
//
// On Unix-like systems any execute bit (user, group or other) qualifies.
// On Windows the decision is made by extension against pathext.
func IsExecutable(goos, name string, mode fs.FileMode, pathext string) bool {
	if !mode.IsRegular() {
		return false
	}

	if goos == Windows {
		ext := strings.ToLower(filepath.Ext(name))
		if ext == "" {
			return false
		}
		for _, e := range ExecutableExtensions(pathext) {
			if ext == e {
				return true
			}
		}
		return false
	}

	return mode.Perm()&0o111 != 0
}

// TrimExecutableExt strips a Windows executable extension from name so that
// "toolforge-jobs.exe" and "toolforge-jobs" name the same subcommand.
// On other systems the name is returned unchanged.
func TrimExecutableExt(goos, name, pathext string) string {
	if goos != Windows {
		return name
	}

	ext := filepath.Ext(name)
	lower := strings.ToLower(ext)
	for _, e := range ExecutableExtensions(pathext) {
		if lower == e {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}
