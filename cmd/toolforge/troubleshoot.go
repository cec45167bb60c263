// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"toolforge-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newTroubleshootCommand creates the `toolforge troubleshoot` command, which
// prints the guide for every error toolforge can report.
func newTroubleshootCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "troubleshoot",
		Short: "Explain the errors toolforge reports and how to fix them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			style := glamourStyle(s.cfg.UI.ColorScheme)
			out := cmd.OutOrStdout()
			for _, entry := range issue.Values() {
				rendered, err := entry.Render(style)
				if err != nil {
					return err
				}
				if _, err := io.WriteString(out, rendered); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
