// SPDX-License-Identifier: MPL-2.0

// Package logging wires charmbracelet/log in as the process-wide slog handler.
package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every log line so output is attributable when it
// is interleaved with a subcommand's own output.
const Prefix = "toolforge"

// New returns a logger writing to w. Debug enables debug records with
// timestamps; otherwise only warnings and errors are written.
func New(w io.Writer, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           level,
		ReportTimestamp: debug,
		TimeFormat:      time.TimeOnly,
	})
}

// Setup installs a logger writing to w as the slog default and returns it.
func Setup(w io.Writer, debug bool) *slog.Logger {
	logger := slog.New(New(w, debug))
	slog.SetDefault(logger)
	return logger
}
