// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ChildInvocation is a resolved subcommand launch.
type ChildInvocation struct {
	// Name is the short subcommand name that was looked up.
	Name string
	// Path is the absolute path of the executable.
	Path string
	// Args are the trailing arguments exactly as received.
	Args []string
	// Env is the full child environment in KEY=VALUE form.
	Env []string
	// Overlay holds the variables that were layered onto the base environment.
	Overlay map[string]string
}

// Argv returns the child's argument vector: the executable path followed by
// the trailing arguments.
func (c *ChildInvocation) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Path)
	return append(argv, c.Args...)
}

// CommandLine renders the argument vector as a POSIX shell command line.
// It is for display only; the child never sees this string.
func (c *ChildInvocation) CommandLine() string {
	argv := c.Argv()
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		// NUL bytes and the like have no shell spelling.
		return strconv.Quote(s)
	}
	return q
}
