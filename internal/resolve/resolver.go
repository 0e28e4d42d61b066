package resolve

import (
	"context"
	"fmt"
	"os"
)

// Level is how aliases take part in resolution.
type Level int

const (
	// AliasOff uses the target as a literal path.
	AliasOff Level = iota
	// AliasFallback prefers a literal directory and falls back to an alias.
	AliasFallback
	// AliasOnly treats the target as an alias name and ignores the filesystem.
	AliasOnly
)

// LevelFromCount maps the number of -a flags to a Level.
// Counts above two behave like two.
func LevelFromCount(n int) Level {
	switch {
	case n <= 0:
		return AliasOff
	case n == 1:
		return AliasFallback
	default:
		return AliasOnly
	}
}

func (l Level) String() string {
	switch l {
	case AliasOff:
		return "off"
	case AliasFallback:
		return "fallback"
	case AliasOnly:
		return "only"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// AliasSource looks up alias names.
// A miss is found=false with a nil error.
type AliasSource interface {
	Lookup(ctx context.Context, name string) (path string, found bool, err error)
}

// Request describes one resolution.
type Request struct {
	// Target is the first positional argument: a path or an alias name.
	Target string

	// Level controls alias usage.
	Level Level

	// CreateIfAbsent creates the chosen directory (and its parents) when
	// it does not exist.
	CreateIfAbsent bool
}

// Resolver decides the directory for a Request.
type Resolver struct {
	Aliases AliasSource

	// MkdirAll creates a directory with its parents. Defaults to os.MkdirAll.
	MkdirAll func(path string, perm os.FileMode) error
}

// New returns a Resolver reading aliases from src.
func New(src AliasSource) *Resolver {
	return &Resolver{Aliases: src}
}

// Resolve returns the directory to change into.
//
// Errors are *Error for resolution failures; store failures from the
// alias source are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, req Request) (string, error) {
	level := req.Level
	switch {
	case level < AliasOff:
		level = AliasOff
	case level > AliasOnly:
		level = AliasOnly
	}

	path := req.Target
	if level != AliasOnly && isDir(path) {
		return path, nil
	}

	if level != AliasOff {
		resolved, found, err := r.Aliases.Lookup(ctx, req.Target)
		if err != nil {
			return "", err
		}
		if !found {
			code := ErrCodePathOrAliasNotFound
			if level == AliasOnly {
				code = ErrCodeAliasNotFound
			}
			return "", &Error{Code: code, Name: req.Target}
		}
		path = resolved
		if isDir(path) {
			return path, nil
		}
	}

	if req.CreateIfAbsent {
		if err := r.mkdirAll(path, 0o755); err != nil {
			return "", &Error{Code: ErrCodePathCreateFailed, Name: req.Target, Path: path, Err: err}
		}
	}
	return path, nil
}

func (r *Resolver) mkdirAll(path string, perm os.FileMode) error {
	if r.MkdirAll != nil {
		return r.MkdirAll(path, perm)
	}
	return os.MkdirAll(path, perm)
}

// isDir reports whether path exists and is a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
