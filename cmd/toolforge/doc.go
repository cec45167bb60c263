// SPDX-License-Identifier: MPL-2.0

// Package cmd is the toolforge command line. It parses the global flags,
// builds the command tree from the subcommands discovered on PATH and hands
// the chosen one over to the dispatcher. It is the only place that decides
// what the user sees and which exit code the process ends with.
package cmd
