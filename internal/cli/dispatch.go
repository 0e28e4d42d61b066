package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/execdir/internal/config"
	"github.com/roach88/execdir/internal/launch"
	"github.com/roach88/execdir/internal/store"
)

// Launcher starts a command inside a resolved directory.
type Launcher interface {
	Launch(ctx context.Context, dir string, argv []string, mode launch.Mode) (int, error)
}

// env is what every command path needs: config, logger, store and output.
type env struct {
	cfg     *config.Config
	log     *slog.Logger
	aliases store.Aliases
	out     *OutputFormatter
}

// dispatch routes to alias management or to the resolve-and-launch path.
// Precedence follows the flags: -n, -r, -g, -l, then run.
func dispatch(cmd *cobra.Command, opts *RootOptions, args []string) error {
	if opts.Version {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "execdir version %s\n", Version)
		return err
	}

	e, err := newEnv(cmd, opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case opts.Add:
		err = addAlias(ctx, e, opts, args)
	case opts.Remove:
		err = removeAlias(ctx, e, args)
	case opts.Get:
		err = getAlias(ctx, e, args)
	case opts.List:
		err = listAliases(ctx, e, args)
	default:
		return runInDirectory(ctx, e, opts, args)
	}

	if err != nil {
		if outErr := e.out.Error(ErrorCode(err), err.Error(), nil); outErr != nil {
			e.log.Error("error writing output", "error", outErr)
		}
	}
	return err
}

func newEnv(cmd *cobra.Command, opts *RootOptions) (*env, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	// Configure logging based on verbose flag
	logLevel := cfg.Level()
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler).With("run", uuid.Must(uuid.NewV7()).String())

	dir, err := cfg.StoreDir(opts.Database)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", "config", cfgPath, "store", dir)

	return &env{
		cfg:     cfg,
		log:     logger,
		aliases: store.Aliases{Dir: dir},
		out:     &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()},
	}, nil
}
