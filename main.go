// SPDX-License-Identifier: MPL-2.0

// Toolforge is the umbrella command for the toolforge-* tools found on PATH.
package main

import cmd "toolforge-cli/cmd/toolforge"

func main() {
	cmd.Execute()
}
