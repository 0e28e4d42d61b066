// Package launch enters a directory and runs a command there, either by
// replacing the current process or through a shell.
package launch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// DefaultShell runs commands in ModeShell when no shell is configured.
const DefaultShell = "/bin/sh"

// exitFailure is reported for a shell command that did not exit normally.
const exitFailure = 1

// Mode selects how the command runs.
type Mode int

const (
	// ModeExec replaces the current process with argv[0].
	ModeExec Mode = iota
	// ModeShell runs argv joined by spaces with "<shell> -c" and waits for it.
	ModeShell
)

// ExecFunc replaces the process image. It returns only on failure.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// Launcher runs commands inside a target directory.
type Launcher struct {
	// Shell used for ModeShell. Defaults to DefaultShell.
	Shell string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Exec replaces the process image in ModeExec. Defaults to unix.Exec.
	Exec ExecFunc

	// LookPath finds argv[0] in $PATH. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)

	Logger *slog.Logger
}

// New returns a Launcher wired to the process's standard streams.
func New(shell string) *Launcher {
	if shell == "" {
		shell = DefaultShell
	}
	return &Launcher{
		Shell:    shell,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Exec:     unix.Exec,
		LookPath: exec.LookPath,
		Logger:   slog.Default(),
	}
}

// Launch changes into dir, exports OLDPWD and PWD, and runs argv.
//
// In ModeExec a successful launch never returns. In ModeShell the
// command's exit status is returned; a command killed by a signal
// reports status 1.
func (l *Launcher) Launch(ctx context.Context, dir string, argv []string, mode Mode) (int, error) {
	if len(argv) == 0 {
		return exitFailure, &Error{Code: ErrCodeExec, Err: errors.New("no command given")}
	}

	if err := Enter(dir); err != nil {
		return exitFailure, err
	}

	l.logger().Debug("entered directory", "dir", dir, "mode", mode, "argv", argv)

	if mode == ModeShell {
		return l.runShell(ctx, argv)
	}
	return exitFailure, l.replace(argv)
}

// Enter changes the working directory to dir and sets OLDPWD/PWD to the
// previous and new directories.
func Enter(dir string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return &Error{Code: ErrCodeChdir, Err: err}
	}
	if err := os.Chdir(dir); err != nil {
		return &Error{Code: ErrCodeChdir, Dir: dir, Err: err}
	}
	if err := os.Setenv("OLDPWD", cwd); err != nil {
		return &Error{Code: ErrCodeChdir, Dir: dir, Err: err}
	}
	if err := os.Setenv("PWD", dir); err != nil {
		return &Error{Code: ErrCodeChdir, Dir: dir, Err: err}
	}
	return nil
}

func (l *Launcher) replace(argv []string) error {
	lookPath := l.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(argv[0])
	if err != nil {
		return &Error{Code: ErrCodeExec, Err: err}
	}

	execFn := l.Exec
	if execFn == nil {
		execFn = unix.Exec
	}
	if err := execFn(path, argv, os.Environ()); err != nil {
		return &Error{Code: ErrCodeExec, Err: err}
	}
	// Only a fake ExecFunc gets here.
	return nil
}

func (l *Launcher) runShell(ctx context.Context, argv []string) (int, error) {
	shell := l.Shell
	if shell == "" {
		shell = DefaultShell
	}
	command := strings.Join(argv, " ")

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Exited() {
			return exitErr.ExitCode(), nil
		}
		l.logger().Debug("shell command terminated abnormally", "command", command, "state", exitErr.String())
		return exitFailure, nil
	}
	return exitFailure, &Error{Code: ErrCodeExec, Err: err}
}

func (l *Launcher) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func (m Mode) String() string {
	if m == ModeShell {
		return "shell"
	}
	return "exec"
}
