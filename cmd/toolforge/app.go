// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"toolforge-cli/internal/config"
	"toolforge-cli/internal/discovery"
	"toolforge-cli/internal/dispatch"
	"toolforge-cli/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: every cobra handler receives an App reference and goes
	// through its service interfaces for configuration, discovery and launching.
	App struct {
		Config     ConfigProvider
		Discovery  DiscoveryService
		Runner     Runner
		stdin      io.Reader
		stdout     io.Writer
		stderr     io.Writer
		environ    func() []string
		lookupEnv  func(string) (string, bool)
		executable func() (string, error)
		reraise    func(os.Signal)
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config     ConfigProvider
		Discovery  DiscoveryService
		Runner     Runner
		Stdin      io.Reader
		Stdout     io.Writer
		Stderr     io.Writer
		// Environ returns the base environment handed to subcommands.
		Environ func() []string
		// LookupEnv reads PATH for discovery.
		LookupEnv func(string) (string, bool)
		// Executable reports the umbrella's own path for self-exclusion.
		Executable func() (string, error)
		// Reraise is called with the signal that killed a spawned subcommand.
		Reraise func(os.Signal)
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// DiscoveryService builds the subcommand table for one invocation.
	DiscoveryService interface {
		Discover(searchPath discovery.SearchPath, prefix, selfPath string) *discovery.CommandTable
	}

	// Runner launches a resolved subcommand with the given strategy. In exec
	// mode a successful Run does not return.
	Runner interface {
		Run(mode dispatch.Mode, inv *dispatch.ChildInvocation) (dispatch.Result, error)
	}

	// session is the state of a single umbrella invocation, resolved before
	// the command tree is built.
	session struct {
		opts  globalOptions
		cfg   *config.Config
		flags dispatch.GlobalFlags
		mode  dispatch.Mode
		table *discovery.CommandTable

		// exitCode and signal carry the outcome of RunE handlers past fang.
		exitCode types.ExitCode
		signal   os.Signal
	}

	defaultDiscovery struct{}

	dispatchRunner struct {
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Discovery == nil {
		deps.Discovery = defaultDiscovery{}
	}
	if deps.Runner == nil {
		deps.Runner = &dispatchRunner{stdin: deps.Stdin, stdout: deps.Stdout, stderr: deps.Stderr}
	}
	if deps.Environ == nil {
		deps.Environ = os.Environ
	}
	if deps.LookupEnv == nil {
		deps.LookupEnv = os.LookupEnv
	}
	if deps.Executable == nil {
		deps.Executable = os.Executable
	}
	if deps.Reraise == nil {
		deps.Reraise = dispatch.Reraise
	}

	return &App{
		Config:     deps.Config,
		Discovery:  deps.Discovery,
		Runner:     deps.Runner,
		stdin:      deps.Stdin,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		environ:    deps.Environ,
		lookupEnv:  deps.LookupEnv,
		executable: deps.Executable,
		reraise:    deps.Reraise,
	}
}

// Discover builds the table with a Discoverer created at call time, so it
// logs through whatever slog default the invocation installed.
func (defaultDiscovery) Discover(searchPath discovery.SearchPath, prefix, selfPath string) *discovery.CommandTable {
	return discovery.New().Discover(searchPath, prefix, selfPath)
}

// Run launches inv through the dispatch package.
func (r *dispatchRunner) Run(mode dispatch.Mode, inv *dispatch.ChildInvocation) (dispatch.Result, error) {
	d := dispatch.New(
		dispatch.WithMode(mode),
		dispatch.WithStdio(r.stdin, r.stdout, r.stderr),
	)
	return d.Run(inv)
}

// selfPath is the umbrella's own path, or "" when the OS cannot tell.
func (a *App) selfPath() string {
	path, err := a.executable()
	if err != nil {
		slog.Debug("cannot determine umbrella path, self-exclusion disabled", "reason", err)
		return ""
	}
	return path
}

// loadConfigWithFallback loads configuration via the provider. On failure it
// returns defaults together with the error so callers stay operational.
// fatal is set when the user named the file explicitly with --config: a file
// the user asked for must load.
func loadConfigWithFallback(ctx context.Context, provider ConfigProvider, configPath string) (cfg *config.Config, fatal bool, err error) {
	cfg, err = provider.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(configPath)})
	if err == nil {
		return cfg, false, nil
	}
	if configPath != "" {
		return nil, true, err
	}
	return config.DefaultConfig(), false, err
}
