// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"toolforge-cli/internal/dispatch"
	"toolforge-cli/internal/issue"
	"toolforge-cli/pkg/types"

	"github.com/spf13/cobra"
)

// registerSubcommands adds one cobra command per discovered name. A
// discovered subcommand replaces a builtin of the same name.
func registerSubcommands(root *cobra.Command, a *App, s *session) {
	for _, name := range s.table.Names() {
		if !isCommandName(name) {
			slog.Debug("subcommand name not usable as a cobra command, reachable by dispatch only", "name", name)
			continue
		}
		for _, c := range root.Commands() {
			if c.Name() == name {
				slog.Debug("discovered subcommand replaces builtin", "name", name)
				root.RemoveCommand(c)
			}
		}
		root.AddCommand(newSubcommand(a, s, name))
	}
}

// isCommandName reports whether cobra can match name as a command: cobra
// takes the first word of Use and never matches an argument starting with "-".
func isCommandName(name string) bool {
	return !strings.HasPrefix(name, "-") && !strings.ContainsFunc(name, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n'
	})
}

func newSubcommand(a *App, s *session, name string) *cobra.Command {
	path, _ := s.table.Lookup(name)
	return &cobra.Command{
		Use:   name,
		Short: "Run " + path,
		// Everything after the name, --help included, belongs to the subcommand.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.settle(s, a.runSubcommand(s, name, args))
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveDefault
		},
	}
}

// runSubcommand resolves name against the session's table and launches it.
// A non-zero child exit is returned as an *ExitError without a message.
func (a *App) runSubcommand(s *session, name string, args []string) error {
	inv, err := dispatch.Resolve(s.table, s.flags, name, args, a.environ())
	if err != nil {
		return dispatchExitError(name, err)
	}

	if s.opts.dryRun {
		return printInvocation(a.stdout, s.mode, inv)
	}

	res, err := a.Runner.Run(s.mode, inv)
	if err != nil {
		return dispatchExitError(name, err)
	}
	s.signal = res.Signal
	if !res.ExitCode.IsSuccess() {
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}

// dispatchExitError maps dispatch failures to exit codes and user-facing
// errors. 127 and 126 follow the shell's "not found" and "not executable".
func dispatchExitError(name string, err error) *ExitError {
	var notFound *dispatch.CommandNotFoundError
	if errors.As(err, &notFound) {
		ec := issue.NewErrorContext().
			WithOperation("run subcommand").
			WithIssue(issue.CommandNotFoundId)
		if notFound.Suggestion != "" {
			ec.WithSuggestion(fmt.Sprintf("Did you mean %q?", notFound.Suggestion))
		}
		ec.WithSuggestion("Run 'toolforge' without arguments to list the available subcommands")
		return &ExitError{Code: types.ExitCommandNotFound, Err: ec.Wrap(err).BuildError()}
	}

	var execFailed *dispatch.ExecFailedError
	if errors.As(err, &execFailed) {
		ec := issue.NewErrorContext().
			WithOperation("run subcommand").
			WithResource(name).
			WithIssue(issue.ExecFailedId).
			WithSuggestion("Check that " + execFailed.Path + " still exists and is executable").
			Wrap(err)
		return &ExitError{Code: types.ExitExecFailed, Err: ec.BuildError()}
	}

	return &ExitError{Code: types.ExitFailure, Err: issue.WrapWithContext(err, "run subcommand", name)}
}

func newCommandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "_commands",
		Short:  "List command names for shell completion",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range commandNames(cmd.Root()) {
				if _, err := fmt.Fprintln(out, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// commandNames returns every visible command under root, discovered and
// builtin alike, sorted.
func commandNames(root *cobra.Command) []string {
	var names []string
	for _, c := range root.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	slices.Sort(names)
	return names
}
