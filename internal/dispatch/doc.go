// SPDX-License-Identifier: MPL-2.0

// Package dispatch hands a discovered subcommand its process.
//
// Dispatch looks a short name up in a discovery.CommandTable, builds the
// child environment by layering the TOOLFORGE_VERBOSE and TOOLFORGE_DEBUG
// signals over the inherited environment, and then either replaces the
// current process image (ModeExec) or spawns the child with inherited stdio
// and waits for it (ModeSpawn). Trailing arguments are forwarded verbatim.
//
// Two failures are distinguished: ErrCommandNotFound when the name has no
// entry, and ErrExecFailed when a resolved path could not be launched.
// Neither is rendered here; user-facing text and exit codes are decided by
// the command layer.
package dispatch
