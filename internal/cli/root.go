package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version is the execdir release. Overridable with -ldflags "-X".
var Version = "0.4.0"

const usageLine = "execdir [-h] [-v] [-s] [-a] [-a] [-p] [-n NAME PATH] [-r NAME] [-g NAME] [-l [PATTERN]] PATH [ARGS...]"

// RootOptions holds the flags of the execdir command.
type RootOptions struct {
	Version    bool
	Shell      bool
	AliasLevel int
	Parents    bool

	Add    bool
	Remove bool
	Get    bool
	List   bool

	Format     string // "json" | "text"
	Database   string
	ConfigPath string
	Verbose    bool

	// Launcher allows overriding how the command is started (for testing).
	// If nil, a launch.Launcher using the configured shell is used.
	Launcher Launcher
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the execdir command.
func NewRootCommand() *cobra.Command {
	return NewCommand(&RootOptions{})
}

// NewCommand creates the execdir command bound to opts.
func NewCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execdir [flags] PATH [ARGS...]",
		Short: "Execute a command in another directory",
		Long: `Change into PATH and execute ARGS there.

PATH is a directory or, with -a, the name of an alias. With -a, an
existing directory wins over an alias of the same name; with -aa only
aliases are consulted. -p creates the directory if it does not exist.

Aliases are kept in ~/.execdir.db (override with --db or $EXECDIR_DB).

Example:
  execdir -n proj ~/src/project
  execdir -a proj git status
  execdir -s /tmp 'ls | wc -l'`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitFailure, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, opts, args)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	// Everything after PATH belongs to the command being run.
	cmd.Flags().SetInterspersed(false)

	f := cmd.Flags()
	f.BoolVarP(&opts.Version, "version", "v", false, "output version information and exit")
	f.BoolVarP(&opts.Shell, "shell", "s", false, "execute the command as a shell command")
	f.CountVarP(&opts.AliasLevel, "alias", "a", "use aliases (-aa for using only aliases)")
	f.BoolVarP(&opts.Parents, "parents", "p", false, "create directory if absent")
	f.BoolVarP(&opts.Add, "new", "n", false, "add an alias NAME for PATH")
	f.BoolVarP(&opts.Remove, "remove", "r", false, "remove an alias")
	f.BoolVarP(&opts.Get, "get", "g", false, "print the path of an alias")
	f.BoolVarP(&opts.List, "list", "l", false, "list all aliases, optionally only names matching PATTERN")
	f.StringVar(&opts.Format, "format", "text", "output format for -g and -l (json|text)")
	f.StringVar(&opts.Database, "db", "", "alias store directory")
	f.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/execdir/config.yaml)")
	f.BoolVar(&opts.Verbose, "verbose", false, "verbose output")

	return cmd
}

// Main runs execdir with args and returns the process exit code.
// Errors are printed once, prefixed with the tool's name.
func Main(args []string) int {
	return execute(&RootOptions{}, args, os.Stdout, os.Stderr)
}

func execute(opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	cmd := NewCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintf(stderr, "execdir: %s\n", msg)
	}
	return GetExitCode(err)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
