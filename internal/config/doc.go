// SPDX-License-Identifier: MPL-2.0

// Package config handles toolforge configuration using Viper with YAML files
// validated against an embedded CUE schema (config_schema.cue).
//
// Files are read from lowest to highest priority and merged key by key:
//
//	/etc/toolforge-cli.yaml
//	~/.toolforge.yaml
//	~/.config/toolforge.yaml
//	$XDG_CONFIG_HOME/toolforge.yaml
//
// Missing files are skipped. An explicit --config path replaces the whole
// list. TOOLFORGE_CLI_PREFIX overrides toolforge_prefix from any file.
//
// Unknown top-level keys are accepted and ignored so that subcommands can keep
// their own sections in the same files.
package config
