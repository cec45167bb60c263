// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"os"
	"path/filepath"
	"strings"
)

// PathEnvVar is the environment variable enumerating search directories.
const PathEnvVar = "PATH"

// SearchPath is an ordered list of directories. Earlier entries take
// precedence when the same short name is found in more than one of them.
type SearchPath []string

// ParseSearchPath splits a PATH-style value on the platform list separator.
// Empty elements are dropped: they name no directory to scan.
func ParseSearchPath(value string) SearchPath {
	return parseSearchPath(value, os.PathListSeparator)
}

func parseSearchPath(value string, sep rune) SearchPath {
	var sp SearchPath
	for _, dir := range strings.Split(value, string(sep)) {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		sp = append(sp, dir)
	}
	return sp
}

// SearchPathFromEnv builds the search path from lookup(PathEnvVar).
// When the variable is not set at all the current directory is searched,
// matching the behaviour of the shell-less exec family.
func SearchPathFromEnv(lookup func(string) (string, bool)) SearchPath {
	value, ok := lookup(PathEnvVar)
	if !ok {
		return SearchPath{"."}
	}
	return ParseSearchPath(value)
}

// String joins the directories back into a PATH-style value.
func (sp SearchPath) String() string {
	return strings.Join(sp, string(os.PathListSeparator))
}

// Abs returns a copy of the search path with every directory made absolute.
// Directories that cannot be made absolute are kept verbatim.
func (sp SearchPath) Abs() SearchPath {
	out := make(SearchPath, 0, len(sp))
	for _, dir := range sp {
		if abs, err := filepath.Abs(dir); err == nil {
			out = append(out, abs)
			continue
		}
		out = append(out, dir)
	}
	return out
}
