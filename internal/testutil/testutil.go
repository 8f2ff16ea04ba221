//go:build !windows

// Package testutil provides helpers shared by the harness test suites.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// RequireBash skips the test when bash is not available; every PTY test
// ultimately spawns a bash child.
func RequireBash(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
}

// WriteTarget writes a stand-in tint script with the given body into a fresh
// temp dir and returns its path. The body must define tint_pick.
func WriteTarget(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tint")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write target: %v", err)
	}
	return path
}
