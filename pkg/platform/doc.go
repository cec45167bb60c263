// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes the GOOS comparisons and the rules for deciding whether a
// file on the search path is something the operating system would run:
// execute permission bits on Unix-like systems and PATHEXT extensions on
// Windows.
package platform
