// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"toolforge-cli/internal/config"
	"toolforge-cli/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `toolforge config` command tree.
// Subcommands that read configuration use the App's ConfigProvider and honor --config.
func newConfigCommand(a *App, s *session) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage toolforge configuration",
		Long: `Manage toolforge configuration.

Configuration is merged from these YAML files, later ones overriding earlier ones key by key:
  - ` + config.SystemConfigPath + `
  - ~/.toolforge.yaml
  - ~/.config/toolforge.yaml
  - $XDG_CONFIG_HOME/toolforge.yaml

` + config.PrefixEnvVar + ` overrides toolforge_prefix from every file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.settle(s, showConfig(cmd, a, s))
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.settle(s, dumpConfig(cmd, a, s, config.Format(format)))
		},
	}
	dumpCmd.Flags().StringVar(&format, "format", string(config.FormatYAML), "output format: yaml, toml or json")
	_ = dumpCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{string(config.FormatYAML), string(config.FormatTOML), string(config.FormatJSON)},
		cobra.ShellCompDirectiveNoFileComp,
	))
	cfgCmd.AddCommand(dumpCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration files and which exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd.OutOrStdout(), s)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.settle(s, initConfig(cmd.OutOrStdout()))
		},
	})

	return cfgCmd
}

func (s *session) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: types.FilesystemPath(s.opts.configPath)}
}

// loadStrict reloads configuration without the fallback to defaults: the
// config commands report a broken file instead of papering over it.
func loadStrict(cmd *cobra.Command, a *App, s *session) (*config.Config, error) {
	cfg, err := a.Config.Load(cmd.Context(), s.loadOptions())
	if err != nil {
		return nil, &ExitError{Code: types.ExitFailure, Err: err}
	}
	return cfg, nil
}

func showConfig(cmd *cobra.Command, a *App, s *session) error {
	cfg, err := loadStrict(cmd, a, s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	_, _ = fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	_, _ = fmt.Fprintln(out)

	var merged []string
	for _, src := range config.Sources(s.loadOptions()) {
		if src.Exists {
			merged = append(merged, src.Path)
		}
	}
	if len(merged) == 0 {
		_, _ = fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config files"), SubtitleStyle.Render("(using defaults)"))
	} else {
		_, _ = fmt.Fprintf(out, "%s:\n", keyStyle.Render("Config files"))
		for _, p := range merged {
			_, _ = fmt.Fprintf(out, "  - %s\n", p)
		}
	}
	_, _ = fmt.Fprintln(out)

	_, _ = fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("toolforge_prefix"), valueStyle.Render(cfg.ToolforgePrefix.String()))
	if _, ok := os.LookupEnv(config.PrefixEnvVar); ok {
		_, _ = fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(from "+config.PrefixEnvVar+")"))
	}
	_, _ = fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("exec_mode"), valueStyle.Render(cfg.ExecMode.String()))

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	_, _ = fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))
	_, _ = fmt.Fprintf(out, "  debug: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Debug)))
	_, _ = fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))

	return nil
}

func dumpConfig(cmd *cobra.Command, a *App, s *session, format config.Format) error {
	if err := format.Validate(); err != nil {
		return &ExitError{Code: types.ExitFailure, Err: err}
	}
	cfg, err := loadStrict(cmd, a, s)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg, format)
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: err}
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func showConfigPath(w io.Writer, s *session) error {
	for _, src := range config.Sources(s.loadOptions()) {
		state := SubtitleStyle.Render("(missing)")
		if src.Exists {
			state = SuccessStyle.Render("(found)")
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", src.Path, state); err != nil {
			return err
		}
	}
	return nil
}

func initConfig(w io.Writer) error {
	path, created, err := config.CreateDefaultConfig(config.LoadOptions{})
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: fmt.Errorf("failed to create config: %w", err)}
	}
	if !created {
		_, err = fmt.Fprintf(w, "Configuration already exists at %s\n", path)
		return err
	}
	_, err = fmt.Fprintf(w, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return err
}
