package cli

import (
	"context"

	"github.com/roach88/execdir/internal/launch"
	"github.com/roach88/execdir/internal/resolve"
)

// runInDirectory resolves the target and hands the command to the launcher.
func runInDirectory(ctx context.Context, e *env, opts *RootOptions, args []string) error {
	if len(args) < 2 {
		return NewExitError(ExitFailure, "usage: "+usageLine)
	}
	target, argv := args[0], args[1:]

	req := resolve.Request{
		Target:         target,
		Level:          resolve.LevelFromCount(opts.AliasLevel),
		CreateIfAbsent: opts.Parents,
	}
	dir, err := resolve.New(e.aliases).Resolve(ctx, req)
	if err != nil {
		return err
	}
	e.log.Debug("target resolved", "target", target, "level", req.Level, "dir", dir)

	mode := launch.ModeExec
	if opts.Shell {
		mode = launch.ModeShell
	}

	launcher := opts.Launcher
	if launcher == nil {
		l := launch.New(e.cfg.Shell)
		l.Logger = e.log
		launcher = l
	}

	status, err := launcher.Launch(ctx, dir, argv, mode)
	if err != nil {
		return err
	}
	if status != ExitSuccess {
		// The command already reported its own failure.
		return &ExitError{Code: status}
	}
	return nil
}
