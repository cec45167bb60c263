// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"slices"

	"toolforge-cli/internal/discovery"
	"toolforge-cli/pkg/types"
)

type (
	// Result is the outcome of a spawned subcommand.
	Result struct {
		// ExitCode is the child's exit status, or 128+N when it was killed by signal N.
		ExitCode types.ExitCode
		// Signal is the signal that terminated the child, nil if it exited normally.
		Signal os.Signal
	}

	// Dispatcher launches resolved subcommands.
	Dispatcher struct {
		mode   Mode
		logger *slog.Logger
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}

	// Option configures a Dispatcher.
	Option func(*Dispatcher)
)

// WithMode selects exec or spawn. An exec request on a platform without
// process replacement falls back to spawn.
func WithMode(m Mode) Option {
	return func(d *Dispatcher) { d.mode = m }
}

// WithLogger sets the logger for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithStdio overrides the streams a spawned child receives. Streams that are
// *os.File are handed to the child directly, so a terminal stays a terminal.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(d *Dispatcher) {
		d.stdin = stdin
		d.stdout = stdout
		d.stderr = stderr
	}
}

// New creates a Dispatcher with the platform default mode and the process's own stdio.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		mode:   DefaultMode(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Mode returns the strategy Run will actually use on this platform.
func (d *Dispatcher) Mode() Mode {
	if d.mode == ModeExec && !execSupported {
		return ModeSpawn
	}
	return d.mode
}

// Resolve looks name up in table and builds the invocation without running
// anything. An unknown name yields a *CommandNotFoundError.
func Resolve(table *discovery.CommandTable, flags GlobalFlags, name string, args, baseEnv []string) (*ChildInvocation, error) {
	path, ok := table.Lookup(name)
	if !ok {
		return nil, &CommandNotFoundError{Name: name, Suggestion: Suggest(name, table.Names())}
	}

	overlay := EnvOverlay(flags)
	return &ChildInvocation{
		Name:    name,
		Path:    path,
		Args:    slices.Clone(args),
		Env:     MergeEnv(baseEnv, overlay),
		Overlay: overlay,
	}, nil
}

// Dispatch resolves name and runs it. In exec mode a successful call does
// not return. Otherwise the child's status is returned once it exits.
func (d *Dispatcher) Dispatch(table *discovery.CommandTable, flags GlobalFlags, name string, args, baseEnv []string) (Result, error) {
	inv, err := Resolve(table, flags, name, args, baseEnv)
	if err != nil {
		return Result{}, err
	}
	return d.Run(inv)
}

// Run launches a resolved invocation.
func (d *Dispatcher) Run(inv *ChildInvocation) (Result, error) {
	mode := d.Mode()
	d.logger.Debug("dispatching subcommand",
		"name", inv.Name,
		"command", inv.CommandLine(),
		"mode", mode.String(),
		VerboseEnvVar, inv.Overlay[VerboseEnvVar],
		DebugEnvVar, inv.Overlay[DebugEnvVar],
	)

	if mode == ModeExec {
		return Result{}, d.replace(inv)
	}
	return d.spawn(inv)
}

// replace hands the process image to the child. It only returns on failure.
func (d *Dispatcher) replace(inv *ChildInvocation) error {
	if err := execFunc(inv.Path, inv.Argv(), inv.Env); err != nil {
		return &ExecFailedError{Path: inv.Path, Err: err}
	}
	return nil
}

func (d *Dispatcher) spawn(inv *ChildInvocation) (Result, error) {
	cmd := exec.Command(inv.Path)
	cmd.Args = inv.Argv()
	cmd.Env = inv.Env
	cmd.Stdin = d.stdin
	cmd.Stdout = d.stdout
	cmd.Stderr = d.stderr

	// The terminal delivers Ctrl-C to the whole foreground group. The child
	// decides what an interrupt means; the umbrella just waits for it.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	if err := cmd.Start(); err != nil {
		return Result{}, &ExecFailedError{Path: inv.Path, Err: err}
	}

	err := cmd.Wait()
	if err == nil {
		return Result{ExitCode: types.ExitSuccess}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res := exitResult(exitErr.ProcessState)
		d.logger.Debug("subcommand exited", "name", inv.Name, "exit_code", int(res.ExitCode), "signal", res.Signal)
		return res, nil
	}

	// Copying to non-file stdio failed after the child ran.
	return Result{ExitCode: types.ExitFailure}, fmt.Errorf("waiting for %s: %w", inv.Path, err)
}
