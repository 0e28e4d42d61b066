package launch

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode categorizes launch failures.
type ErrorCode string

const (
	// ErrCodeChdir indicates the working directory could not be read or changed.
	ErrCodeChdir ErrorCode = "CHDIR"

	// ErrCodeExec indicates the command could not be started.
	ErrCodeExec ErrorCode = "EXEC"
)

// Error is returned when a command cannot be launched.
type Error struct {
	Code ErrorCode

	// Dir is the directory being entered, for ErrCodeChdir.
	Dir string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeChdir:
		if e.Dir == "" {
			return fmt.Sprintf("cannot get the current working directory: %v", cause(e.Err))
		}
		return fmt.Sprintf("cannot change %q directory: %v", e.Dir, cause(e.Err))
	case ErrCodeExec:
		return fmt.Sprintf("failed to execute command: %v", e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsChdirError returns true if err is a working directory failure.
// Uses errors.As to handle wrapped errors.
func IsChdirError(err error) bool {
	var le *Error
	return errors.As(err, &le) && le.Code == ErrCodeChdir
}

// IsExecError returns true if err is a command start failure.
func IsExecError(err error) bool {
	var le *Error
	return errors.As(err, &le) && le.Code == ErrCodeExec
}

// cause strips the *fs.PathError wrapper so messages read
// `cannot change "x" directory: no such file or directory`.
func cause(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
