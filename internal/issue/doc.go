// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries what was attempted, on which resource, and what the
// user can do about it. An error may point at a catalog Issue, a Markdown
// explanation rendered with glamour when the CLI runs in verbose mode.
package issue
