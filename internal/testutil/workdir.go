// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Isolate moves the test into a fresh working directory and pins PWD and
// OLDPWD, so code that calls os.Chdir or sets them is undone at cleanup.
// It returns the directory as reported by os.Getwd.
//
// Tests using Isolate must not call t.Parallel.
func Isolate(t testing.TB) string {
	t.Helper()
	start := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(start))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
	t.Setenv("PWD", start)
	t.Setenv("OLDPWD", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	return wd
}

// WriteFile creates a file named name under a fresh temp directory and
// returns its path.
func WriteFile(t testing.TB, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
