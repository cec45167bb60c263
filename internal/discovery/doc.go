// SPDX-License-Identifier: MPL-2.0

// Package discovery locates toolforge subcommands on the search path.
//
// A subcommand is any regular executable file, in a directory listed in the
// search path, whose name starts with the configured prefix (toolforge- by
// default). Discovery is a pure function of the filesystem, the search path,
// the prefix and the path of the running umbrella binary:
//
//   - directories are scanned in search-path order and ranked from 0;
//   - only direct entries are considered, subdirectories are never descended;
//   - non-executable files, the umbrella binary itself and a bare prefix with
//     no short name are skipped;
//   - when a short name appears more than once, the lowest rank wins.
//
// Nothing found on a heterogeneous search path is an error. Unreadable or
// missing directories, non-executable files and shadowed names are normal and
// are only reported through debug logging.
//
// File organization:
//   - search_path.go: SearchPath parsing from the environment
//   - table.go: Candidate and the immutable CommandTable fold
//   - discovery.go: Discoverer, the directory scan and self-exclusion
package discovery
