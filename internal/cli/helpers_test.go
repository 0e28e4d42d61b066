package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/execdir/internal/config"
	"github.com/roach88/execdir/internal/launch"
)

// fakeLauncher records the launch instead of starting a process.
type fakeLauncher struct {
	called bool
	dir    string
	argv   []string
	mode   launch.Mode
	status int
	err    error
}

func (f *fakeLauncher) Launch(_ context.Context, dir string, argv []string, mode launch.Mode) (int, error) {
	f.called = true
	f.dir, f.argv, f.mode = dir, argv, mode
	return f.status, f.err
}

// harness runs the CLI against a private store with no config file.
type harness struct {
	t        *testing.T
	db       string
	launcher Launcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv(config.EnvStore, "")
	return &harness{
		t:        t,
		db:       filepath.Join(t.TempDir(), "execdir.db"),
		launcher: &fakeLauncher{},
	}
}

// run executes execdir with args and returns exit code, stdout and stderr.
func (h *harness) run(args ...string) (int, string, string) {
	h.t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	full := append([]string{"--db", h.db}, args...)
	code := execute(&RootOptions{Launcher: h.launcher}, full, stdout, stderr)
	return code, stdout.String(), stderr.String()
}

// mustRun fails the test unless execdir exits 0.
func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	code, out, errOut := h.run(args...)
	if code != ExitSuccess {
		h.t.Fatalf("execdir %v exited %d: %s", args, code, errOut)
	}
	return out
}

func (h *harness) fake() *fakeLauncher {
	return h.launcher.(*fakeLauncher)
}
