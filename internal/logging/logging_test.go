// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{"quiet by default", false, false},
		{"debug enabled", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(New(&buf, tt.debug))

			logger.Debug("checking search directory", "dir", "/usr/bin")
			logger.Info("informational")
			logger.Warn("config file ignored", "path", "/etc/toolforge-cli.yaml")

			out := buf.String()
			if got := strings.Contains(out, "checking search directory"); got != tt.wantDebug {
				t.Errorf("debug record present = %v, want %v\n%s", got, tt.wantDebug, out)
			}
			if strings.Contains(out, "informational") != tt.wantDebug {
				t.Errorf("info record visibility wrong for debug=%v\n%s", tt.debug, out)
			}
			if !strings.Contains(out, "config file ignored") || !strings.Contains(out, "/etc/toolforge-cli.yaml") {
				t.Errorf("warning record missing:\n%s", out)
			}
			if !strings.Contains(out, Prefix) {
				t.Errorf("output should carry the %q prefix:\n%s", Prefix, out)
			}
		})
	}
}

func TestSetup_InstallsDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	logger := Setup(&buf, true)

	if slog.Default() != logger {
		t.Fatal("Setup() did not install the logger as slog default")
	}
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level should be enabled")
	}

	slog.Debug("found subcommand", "name", "jobs")
	if !strings.Contains(buf.String(), "found subcommand") {
		t.Errorf("slog.Debug did not reach the installed handler: %q", buf.String())
	}
}
