package resolve

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes resolution failures.
type ErrorCode string

const (
	// ErrCodeAliasNotFound indicates a forced alias lookup (level 2) missed.
	ErrCodeAliasNotFound ErrorCode = "ALIAS_NOT_FOUND"

	// ErrCodePathOrAliasNotFound indicates the target was neither a
	// directory nor an alias (level 1).
	ErrCodePathOrAliasNotFound ErrorCode = "PATH_OR_ALIAS_NOT_FOUND"

	// ErrCodePathCreateFailed indicates the target directory could not be created.
	ErrCodePathCreateFailed ErrorCode = "PATH_CREATE_FAILED"
)

// Error is returned when a target cannot be resolved.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Name is the alias or target argument the user gave.
	Name string

	// Path is the directory that could not be created, for ErrCodePathCreateFailed.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeAliasNotFound:
		return fmt.Sprintf("alias for path %q not found", e.Name)
	case ErrCodePathOrAliasNotFound:
		return fmt.Sprintf("path or alias for path %q not found", e.Name)
	case ErrCodePathCreateFailed:
		if e.Err != nil {
			return fmt.Sprintf("path %q not found: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("path %q not found", e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Name)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsAliasNotFound returns true if err is a forced alias miss.
// Uses errors.As to handle wrapped errors.
func IsAliasNotFound(err error) bool {
	return hasCode(err, ErrCodeAliasNotFound)
}

// IsPathOrAliasNotFound returns true if err is a fallback alias miss.
func IsPathOrAliasNotFound(err error) bool {
	return hasCode(err, ErrCodePathOrAliasNotFound)
}

// IsPathCreateFailed returns true if err is a directory creation failure.
func IsPathCreateFailed(err error) bool {
	return hasCode(err, ErrCodePathCreateFailed)
}

func hasCode(err error, code ErrorCode) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}
