// SPDX-License-Identifier: MPL-2.0

package dispatch

const (
	// VerboseEnvVar tells a subcommand whether --verbose was given.
	VerboseEnvVar = "TOOLFORGE_VERBOSE"
	// DebugEnvVar tells a subcommand whether --debug was given.
	DebugEnvVar = "TOOLFORGE_DEBUG"
)

// GlobalFlags are the umbrella toggles that are forwarded to every child.
type GlobalFlags struct {
	Verbose bool
	Debug   bool
}

// EnvOverlay returns the variables layered onto the child environment.
// Both keys are always present with value "1" or "0".
func EnvOverlay(flags GlobalFlags) map[string]string {
	return map[string]string{
		VerboseEnvVar: boolEnv(flags.Verbose),
		DebugEnvVar:   boolEnv(flags.Debug),
	}
}

func boolEnv(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
