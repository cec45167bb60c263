// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"toolforge-cli/internal/config"
	"toolforge-cli/internal/dispatch"
	"toolforge-cli/internal/issue"
)

// subcommandListing renders the discovered short names, sorted, one per
// line and indented.
func subcommandListing(names []string, prefix string) string {
	if len(names) == 0 {
		return SubtitleStyle.Render(fmt.Sprintf("No subcommands found (looking for executables named '%s*' on PATH).", prefix)) + "\n"
	}

	sorted := slices.Clone(names)
	slices.Sort(sorted)

	var b strings.Builder
	b.WriteString(SubtitleStyle.Render("Subcommands:"))
	b.WriteString("\n")
	for _, name := range sorted {
		b.WriteString("  ")
		b.WriteString(CmdStyle.Render(name))
		b.WriteString("\n")
	}
	return b.String()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderError writes err to stderr. In verbose mode the catalog entry the
// error points at is rendered below it with the configured glamour style.
func (a *App) renderError(err error, verbose bool, scheme config.ColorScheme) {
	_, _ = fmt.Fprintln(a.stderr, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, verbose))
	if !verbose {
		return
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	entry := ae.CatalogIssue()
	if entry == nil {
		return
	}
	rendered, rerr := entry.Render(glamourStyle(scheme))
	if rerr != nil {
		return
	}
	_, _ = fmt.Fprint(a.stderr, rendered)
}

// glamourStyle maps a color scheme to a glamour standard style name.
func glamourStyle(scheme config.ColorScheme) string {
	if scheme == "" {
		return string(config.ColorSchemeAuto)
	}
	return string(scheme)
}

// printInvocation is the --dry-run output: what would run, and how.
func printInvocation(w io.Writer, mode dispatch.Mode, inv *dispatch.ChildInvocation) error {
	keys := make([]string, 0, len(inv.Overlay))
	for k := range inv.Overlay {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", CmdStyle.Render("subcommand:"), inv.Name)
	fmt.Fprintf(&b, "%s %s\n", CmdStyle.Render("path:"), inv.Path)
	fmt.Fprintf(&b, "%s %s\n", CmdStyle.Render("command:"), inv.CommandLine())
	fmt.Fprintf(&b, "%s %s\n", CmdStyle.Render("mode:"), mode)
	fmt.Fprintf(&b, "%s\n", CmdStyle.Render("environment:"))
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s=%s\n", k, inv.Overlay[k])
	}

	_, err := io.WriteString(w, b.String())
	return err
}
