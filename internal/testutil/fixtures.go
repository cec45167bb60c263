// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteExecutable creates an executable file named name in dir containing a
// no-op shell script and returns its absolute path.
func WriteExecutable(t testing.TB, dir, name string) string {
	t.Helper()
	return WriteScript(t, dir, name, "exit 0\n")
}

// WriteScript creates an executable /bin/sh script with the given body.
func WriteScript(t testing.TB, dir, name, body string) string {
	t.Helper()
	return writeFile(t, dir, name, "#!/bin/sh\n"+body, 0o755)
}

// WriteFile creates a regular, non-executable file in dir.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	return writeFile(t, dir, name, content, 0o644)
}

func writeFile(t testing.TB, dir, name, content string, perm os.FileMode) string {
	t.Helper()
	MustMkdirAll(t, dir, 0o755)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	// WriteFile honours the umask on creation; force the exact mode.
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("failed to chmod %s: %v", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("failed to resolve %s: %v", path, err)
	}
	return abs
}
