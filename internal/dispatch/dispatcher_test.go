// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"os"
	"slices"
	"testing"

	"toolforge-cli/internal/discovery"
)

// stubExec replaces execFunc for the duration of a test. The returned
// function reports the captured call, or fails the test if exec was never
// reached. Tests that use it must not run in parallel.
func stubExec(t *testing.T, result error) func() (string, []string, []string) {
	t.Helper()

	var (
		called bool
		binary string
		argv   []string
		env    []string
	)

	original := execFunc
	execFunc = func(path string, args, environment []string) error {
		called = true
		binary = path
		argv = args
		env = environment
		return result
	}
	t.Cleanup(func() { execFunc = original })

	return func() (string, []string, []string) {
		t.Helper()
		if !called {
			t.Fatal("execFunc was not called")
		}
		return binary, argv, env
	}
}

// failOnExec makes any exec attempt fail the test.
func failOnExec(t *testing.T) {
	t.Helper()
	original := execFunc
	execFunc = func(path string, _, _ []string) error {
		t.Errorf("unexpected exec of %s", path)
		return os.ErrPermission
	}
	t.Cleanup(func() { execFunc = original })
}

func literalTable() *discovery.CommandTable {
	return discovery.NewCommandTable([]discovery.Candidate{
		{ShortName: "one", Path: "/a/prefix-one", Rank: 0},
	})
}

func TestResolve_LiteralScenario(t *testing.T) {
	t.Parallel()

	baseEnv := []string{"HOME=/home/tool", "PATH=/a"}
	inv, err := Resolve(literalTable(), GlobalFlags{}, "one", []string{"-h", "x"}, baseEnv)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if want := []string{"/a/prefix-one", "-h", "x"}; !slices.Equal(inv.Argv(), want) {
		t.Errorf("Argv() = %q, want %q", inv.Argv(), want)
	}
	wantEnv := []string{"HOME=/home/tool", "PATH=/a", "TOOLFORGE_DEBUG=0", "TOOLFORGE_VERBOSE=0"}
	if !slices.Equal(inv.Env, wantEnv) {
		t.Errorf("Env = %q, want %q", inv.Env, wantEnv)
	}
	if got := inv.CommandLine(); got != "/a/prefix-one -h x" {
		t.Errorf("CommandLine() = %q", got)
	}
}

func TestResolve_ArgumentsVerbatim(t *testing.T) {
	t.Parallel()

	args := []string{"--help", "", "two words", "*", "$HOME", "--", "-d"}
	inv, err := Resolve(literalTable(), GlobalFlags{Verbose: true}, "one", args, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !slices.Equal(inv.Args, args) {
		t.Errorf("Args = %q, want %q", inv.Args, args)
	}

	want := `/a/prefix-one --help '' 'two words' '*' '$HOME' -- -d`
	if got := inv.CommandLine(); got != want {
		t.Errorf("CommandLine() = %q, want %q", got, want)
	}

	// The invocation owns its copy.
	args[0] = "mutated"
	if inv.Args[0] != "--help" {
		t.Errorf("Args aliases the caller's slice")
	}
}

func TestResolve_CommandNotFound(t *testing.T) {
	t.Parallel()

	table := discovery.NewCommandTable([]discovery.Candidate{
		{ShortName: "jobs", Path: "/bin/toolforge-jobs"},
		{ShortName: "webservice", Path: "/bin/toolforge-webservice"},
	})

	_, err := Resolve(table, GlobalFlags{}, "jbos", nil, nil)
	var notFound *CommandNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Resolve() error = %v, want *CommandNotFoundError", err)
	}
	if notFound.Name != "jbos" || notFound.Suggestion != "jobs" {
		t.Errorf("CommandNotFoundError = %+v", notFound)
	}

	_, err = Resolve(discovery.NewCommandTable(nil), GlobalFlags{}, "jobs", nil, nil)
	if !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("Resolve() on empty table error = %v, want ErrCommandNotFound", err)
	}
}

func TestDispatch_ExecModeHandsOffInvocation(t *testing.T) {
	if !execSupported {
		t.Skip("process replacement not supported on this platform")
	}
	captured := stubExec(t, nil)

	d := New(WithMode(ModeExec))
	res, err := d.Dispatch(literalTable(), GlobalFlags{Debug: true}, "one", []string{"-h", "x"}, []string{"A=1"})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if res.ExitCode != 0 || res.Signal != nil {
		t.Errorf("Dispatch() result = %+v", res)
	}

	binary, argv, env := captured()
	if binary != "/a/prefix-one" {
		t.Errorf("exec binary = %q", binary)
	}
	if want := []string{"/a/prefix-one", "-h", "x"}; !slices.Equal(argv, want) {
		t.Errorf("exec argv = %q, want %q", argv, want)
	}
	if want := []string{"A=1", "TOOLFORGE_DEBUG=1", "TOOLFORGE_VERBOSE=0"}; !slices.Equal(env, want) {
		t.Errorf("exec env = %q, want %q", env, want)
	}
}

func TestDispatch_ExecFailure(t *testing.T) {
	if !execSupported {
		t.Skip("process replacement not supported on this platform")
	}
	stubExec(t, os.ErrPermission)

	_, err := New(WithMode(ModeExec)).Dispatch(literalTable(), GlobalFlags{}, "one", nil, nil)

	var execErr *ExecFailedError
	if !errors.As(err, &execErr) {
		t.Fatalf("Dispatch() error = %v, want *ExecFailedError", err)
	}
	if execErr.Path != "/a/prefix-one" {
		t.Errorf("ExecFailedError.Path = %q", execErr.Path)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("Dispatch() error does not wrap the OS error: %v", err)
	}
	if errors.Is(err, ErrCommandNotFound) {
		t.Errorf("exec failure reported as command not found")
	}
}

func TestDispatch_CommandNotFoundNeverExecutes(t *testing.T) {
	failOnExec(t)

	for _, mode := range []Mode{ModeExec, ModeSpawn} {
		t.Run(mode.String(), func(t *testing.T) {
			_, err := New(WithMode(mode)).Dispatch(literalTable(), GlobalFlags{}, "two", []string{"x"}, os.Environ())
			if !errors.Is(err, ErrCommandNotFound) {
				t.Errorf("Dispatch() error = %v, want ErrCommandNotFound", err)
			}
		})
	}
}

func TestDispatcherMode(t *testing.T) {
	t.Parallel()

	if got := New(WithMode(ModeSpawn)).Mode(); got != ModeSpawn {
		t.Errorf("Mode() = %q, want spawn", got)
	}
	want := ModeExec
	if !execSupported {
		want = ModeSpawn
	}
	if got := New(WithMode(ModeExec)).Mode(); got != want {
		t.Errorf("Mode() = %q, want %q", got, want)
	}
	if got := New().Mode(); got != DefaultMode() {
		t.Errorf("default Mode() = %q, want %q", got, DefaultMode())
	}
}
