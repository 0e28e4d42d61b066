package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gobwas/glob"

	"github.com/roach88/execdir/internal/store"
)

// nullPath is printed by -g for a missing alias.
const nullPath = "(null)"

// aliasResult is the payload of -g.
type aliasResult struct {
	Name string  `json:"name"`
	Path *string `json:"path"`
}

func (r aliasResult) RenderText(w io.Writer) error {
	p := nullPath
	if r.Path != nil {
		p = *r.Path
	}
	_, err := fmt.Fprintln(w, p)
	return err
}

// aliasList is the payload of -l.
type aliasList []store.Alias

func (l aliasList) RenderText(w io.Writer) error {
	for _, a := range l {
		if _, err := fmt.Fprintf(w, "%s:%s\n", a.Name, a.Path); err != nil {
			return err
		}
	}
	return nil
}

func addAlias(ctx context.Context, e *env, opts *RootOptions, args []string) error {
	if len(args) < 2 {
		return NewExitError(ExitFailure, "-n requires two arguments")
	}
	name, path := args[0], args[1]

	if err := e.aliases.Add(ctx, name, path); err != nil {
		return err
	}
	e.log.Debug("alias added", "name", name, "path", path)

	if opts.Parents {
		if err := os.MkdirAll(path, 0o755); err != nil {
			e.log.Warn("could not create alias directory", "path", path, "error", err)
		}
	}
	return nil
}

func removeAlias(ctx context.Context, e *env, args []string) error {
	if len(args) < 1 {
		return NewExitError(ExitFailure, "-r requires one argument")
	}
	if err := e.aliases.Remove(ctx, args[0]); err != nil {
		return err
	}
	e.log.Debug("alias removed", "name", args[0])
	return nil
}

func getAlias(ctx context.Context, e *env, args []string) error {
	if len(args) < 1 {
		return NewExitError(ExitFailure, "-g requires one argument")
	}
	name := args[0]

	path, found, err := e.aliases.Lookup(ctx, name)
	if err != nil {
		return err
	}
	result := aliasResult{Name: name}
	if found {
		result.Path = &path
	}
	return e.out.Success(result)
}

func listAliases(ctx context.Context, e *env, args []string) error {
	var pattern glob.Glob
	if len(args) > 0 {
		g, err := glob.Compile(args[0])
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("invalid pattern %q", args[0]), err)
		}
		pattern = g
	}

	all, err := e.aliases.All(ctx)
	if err != nil {
		return err
	}

	list := make(aliasList, 0, len(all))
	for _, a := range all {
		if pattern == nil || pattern.Match(a.Name) {
			list = append(list, a)
		}
	}
	return e.out.Success(list)
}
