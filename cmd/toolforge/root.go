// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"toolforge-cli/internal/discovery"
	"toolforge-cli/internal/dispatch"
	"toolforge-cli/internal/logging"
	"toolforge-cli/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// globalOptions are the flags accepted before the subcommand name.
type globalOptions struct {
	verbose    bool
	debug      bool
	dryRun     bool
	configPath string

	// verboseSet and debugSet record an explicit flag, even a false one,
	// so that configuration defaults do not override it.
	verboseSet bool
	debugSet   bool
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the umbrella with the process arguments and exits with the
// resulting code. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	os.Exit(int(app.Run(context.Background(), os.Args[1:])))
}

// Run performs one umbrella invocation and returns the exit code the
// process should end with. When the subcommand replaces the process image
// Run does not return at all.
func (a *App) Run(ctx context.Context, args []string) types.ExitCode {
	s, err := a.prepare(ctx, args)
	if err != nil {
		a.renderError(err, s.opts.verbose, "")
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return types.ExitFailure
	}

	root := newRootCommand(a, s)
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	// Use fang.Execute for enhanced Cobra styling.
	// Pass version via fang.WithVersion() since fang overrides root.Version.
	if err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(usageErrorHandler),
	); err != nil {
		return types.ExitFailure
	}

	if s.signal != nil {
		a.reraise(s.signal)
	}
	return s.exitCode
}

// prepare resolves everything the command tree depends on: global flags,
// logging, configuration and the discovered subcommands. The returned
// session is never nil.
func (a *App) prepare(ctx context.Context, args []string) (*session, error) {
	s := &session{opts: parseGlobalOptions(args)}
	logging.Setup(a.stderr, s.opts.debug)

	cfg, fatal, err := loadConfigWithFallback(ctx, a.Config, s.opts.configPath)
	if fatal {
		return s, &ExitError{Code: types.ExitFailure, Err: err}
	}
	if err != nil {
		_, _ = fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, s.opts.verbose))
	}
	s.cfg = cfg

	// Config values apply only when the flag was not given.
	s.flags = dispatch.GlobalFlags{Verbose: s.opts.verbose, Debug: s.opts.debug}
	if !s.opts.verboseSet {
		s.flags.Verbose = cfg.UI.Verbose
	}
	if !s.opts.debugSet {
		s.flags.Debug = cfg.UI.Debug
	}
	if s.flags.Debug && !s.opts.debug {
		logging.Setup(a.stderr, true)
	}

	s.mode = dispatch.Mode(cfg.ExecMode)
	if s.mode == "" {
		s.mode = dispatch.DefaultMode()
	}

	s.table = a.Discovery.Discover(
		discovery.SearchPathFromEnv(a.lookupEnv),
		cfg.ToolforgePrefix.String(),
		a.selfPath(),
	)
	return s, nil
}

// bind registers the global flags on fs.
func (o *globalOptions) bind(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "show extra verbose output (do not rely on its format)")
	fs.BoolVarP(&o.debug, "debug", "d", false, "show debug logs of toolforge and its subcommands")
	fs.StringVar(&o.configPath, "config", "", "read configuration from this file only")
	fs.BoolVar(&o.dryRun, "dry-run", false, "print the resolved subcommand instead of running it")
}

// parseGlobalOptions reads the global flags ahead of cobra: the subcommands
// cannot be registered before the config file and the debug level are known.
// Parsing stops at the first non-flag argument, the subcommand name. Errors
// are ignored here; cobra reports them when it parses the same arguments.
func parseGlobalOptions(args []string) globalOptions {
	var o globalOptions
	fs := pflag.NewFlagSet("toolforge", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	o.bind(fs)
	_ = fs.Parse(args)
	o.verboseSet = fs.Changed("verbose")
	o.debugSet = fs.Changed("debug")
	return o
}

func newRootCommand(a *App, s *session) *cobra.Command {
	prefix := s.cfg.ToolforgePrefix.String()
	root := &cobra.Command{
		Use:   "toolforge [flags] <subcommand> [args...]",
		Short: "Toolforge command line",
		Long: TitleStyle.Render("toolforge") + SubtitleStyle.Render(" - Toolforge command line") + `

Every subcommand is a separate program named '` + prefix + `<name>' found on PATH.
Flags given after the subcommand name are passed to it unchanged.

` + subcommandListing(s.table.Names(), prefix),
		Args:             cobra.ArbitraryArgs,
		TraverseChildren: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := fmt.Fprint(cmd.OutOrStdout(), subcommandListing(s.table.Names(), prefix)+
					"\n"+hintStyle.Render("Run 'toolforge --help' for global flags and builtin commands.")+"\n")
				return err
			}
			// Names cobra could not register still dispatch through the table.
			return a.settle(s, a.runSubcommand(s, args[0], args[1:]))
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveDefault
			}
			// Registered subcommands are completed by cobra already.
			var dispatchOnly []string
			for _, name := range s.table.Names() {
				if !isCommandName(name) {
					dispatchOnly = append(dispatchOnly, name)
				}
			}
			return dispatchOnly, cobra.ShellCompDirectiveNoFileComp
		},
	}
	s.opts.bind(root.PersistentFlags())

	root.AddCommand(
		newConfigCommand(a, s),
		newCompletionCommand(),
		newTroubleshootCommand(s),
		newCommandsCommand(),
	)
	registerSubcommands(root, a, s)

	return root
}

// settle turns a handler's *ExitError into the session's exit code. Fang
// prints every error it is handed, so only usage errors are left for it:
// forwarded exit codes stay silent and dispatch errors are rendered here.
func (a *App) settle(s *session, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		return err
	}
	if exitErr.Err != nil {
		a.renderError(exitErr.Err, s.flags.Verbose, s.cfg.UI.ColorScheme)
	}
	s.exitCode = exitErr.Code
	return nil
}

// usageErrorHandler renders cobra errors (unknown flags, bad arguments to
// builtins) when stderr is a terminal.
func usageErrorHandler(w io.Writer, _ fang.Styles, err error) {
	_, _ = fmt.Fprintln(w, ErrorStyle.Render("Error:")+" "+err.Error())
	_, _ = fmt.Fprintln(w, hintStyle.Render("Run 'toolforge --help' for usage."))
}
