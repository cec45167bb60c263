// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"toolforge-cli/pkg/platform"
)

const (
	// DefaultPrefix marks subcommand executables on PATH.
	DefaultPrefix Prefix = "toolforge-"

	// ExecModeExec replaces the umbrella process with the subcommand.
	ExecModeExec ExecMode = "exec"
	// ExecModeSpawn runs the subcommand as a child and waits for it.
	ExecModeSpawn ExecMode = "spawn"

	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark rendering style.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light rendering style.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidPrefix is the sentinel error wrapped by InvalidPrefixError.
	ErrInvalidPrefix = errors.New("invalid toolforge prefix")
	// ErrInvalidExecMode is returned when an ExecMode value is not recognized.
	ErrInvalidExecMode = errors.New("invalid exec mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Prefix is the filename prefix that turns an executable into a subcommand.
	// It must be non-empty and must not contain a path separator.
	Prefix string

	// InvalidPrefixError is returned when a Prefix cannot name files in a directory.
	InvalidPrefixError struct {
		Value  Prefix
		Reason string
	}

	// ExecMode selects how subcommand processes are started.
	ExecMode string

	// InvalidExecModeError is returned when an ExecMode value is not recognized.
	InvalidExecModeError struct {
		Value ExecMode
	}

	// ColorScheme selects the glamour style used for rendered guidance.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the merged toolforge configuration.
	Config struct {
		// ToolforgePrefix is the filename prefix of subcommand executables.
		ToolforgePrefix Prefix `json:"toolforge_prefix" yaml:"toolforge_prefix" toml:"toolforge_prefix" mapstructure:"toolforge_prefix"`
		// ExecMode selects process replacement or spawn-and-wait.
		ExecMode ExecMode `json:"exec_mode" yaml:"exec_mode" toml:"exec_mode" mapstructure:"exec_mode"`
		// UI holds presentation defaults.
		UI UIConfig `json:"ui" yaml:"ui" toml:"ui" mapstructure:"ui"`
	}

	// UIConfig holds presentation defaults. Verbose and Debug apply when the
	// matching global flag is not given on the command line.
	UIConfig struct {
		Verbose     bool        `json:"verbose" yaml:"verbose" toml:"verbose" mapstructure:"verbose"`
		Debug       bool        `json:"debug" yaml:"debug" toml:"debug" mapstructure:"debug"`
		ColorScheme ColorScheme `json:"color_scheme" yaml:"color_scheme" toml:"color_scheme" mapstructure:"color_scheme"`
	}
)

// DefaultExecMode is exec where the OS can replace a process image, spawn on Windows.
func DefaultExecMode() ExecMode {
	if platform.IsWindows() {
		return ExecModeSpawn
	}
	return ExecModeExec
}

// DefaultConfig returns the configuration used when no file sets a value.
func DefaultConfig() *Config {
	return &Config{
		ToolforgePrefix: DefaultPrefix,
		ExecMode:        DefaultExecMode(),
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// String returns the string representation of the Prefix.
func (p Prefix) String() string { return string(p) }

// Validate returns nil if the prefix can be matched against directory entries.
func (p Prefix) Validate() error {
	switch {
	case strings.TrimSpace(string(p)) == "":
		return &InvalidPrefixError{Value: p, Reason: "must not be empty"}
	case strings.ContainsAny(string(p), `/\`):
		return &InvalidPrefixError{Value: p, Reason: "must not contain a path separator"}
	default:
		return nil
	}
}

// Error implements the error interface.
func (e *InvalidPrefixError) Error() string {
	return fmt.Sprintf("invalid toolforge prefix %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidPrefix so callers can use errors.Is for programmatic detection.
func (e *InvalidPrefixError) Unwrap() error { return ErrInvalidPrefix }

// String returns the string representation of the ExecMode.
func (m ExecMode) String() string { return string(m) }

// Validate returns nil if the ExecMode is exec or spawn.
func (m ExecMode) Validate() error {
	switch m {
	case ExecModeExec, ExecModeSpawn:
		return nil
	default:
		return &InvalidExecModeError{Value: m}
	}
}

// Error implements the error interface.
func (e *InvalidExecModeError) Error() string {
	return fmt.Sprintf("invalid exec mode %q (valid: exec, spawn)", e.Value)
}

// Unwrap returns ErrInvalidExecMode so callers can use errors.Is for programmatic detection.
func (e *InvalidExecModeError) Unwrap() error { return ErrInvalidExecMode }

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// Validate returns nil if the ColorScheme is auto, dark or light.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme so callers can use errors.Is for programmatic detection.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if err := c.ToolforgePrefix.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.ExecMode.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and every field error, so errors.Is matches
// both the sentinel and the specific field sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
