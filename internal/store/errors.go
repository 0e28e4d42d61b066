package store

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeOpen indicates the store directory or database could not be opened.
	ErrCodeOpen ErrorCode = "STORE_OPEN"

	// ErrCodeIO indicates the engine failed during a get, put, delete or list.
	ErrCodeIO ErrorCode = "STORE_IO"

	// ErrCodeInvalidAlias indicates an empty name or a NUL byte in a name or path.
	ErrCodeInvalidAlias ErrorCode = "INVALID_ALIAS"

	// ErrCodeReadOnly indicates a write was attempted on a read-only handle.
	ErrCodeReadOnly ErrorCode = "READ_ONLY"
)

// Error is returned by every store operation that fails.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the failed step ("open database", "put", ...).
	Op string

	// Dir is the store directory, set for open failures.
	Dir string

	// Name is the alias involved, if any.
	Name string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var msg string
	switch {
	case e.Dir != "":
		msg = fmt.Sprintf("store %q: %s", e.Dir, e.Op)
	case e.Name != "":
		msg = fmt.Sprintf("store: %s %q", e.Op, e.Name)
	default:
		msg = "store: " + e.Op
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsOpenError returns true if err is a store open failure.
// Uses errors.As to handle wrapped errors.
func IsOpenError(err error) bool {
	return hasCode(err, ErrCodeOpen)
}

// IsIOError returns true if err is an engine failure during an operation.
func IsIOError(err error) bool {
	return hasCode(err, ErrCodeIO)
}

// IsInvalidAlias returns true if err rejects a malformed name or path.
func IsInvalidAlias(err error) bool {
	return hasCode(err, ErrCodeInvalidAlias)
}

// IsReadOnly returns true if err is a write on a read-only handle.
func IsReadOnly(err error) bool {
	return hasCode(err, ErrCodeReadOnly)
}

func hasCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

func openError(dir, op string, err error) *Error {
	return &Error{Code: ErrCodeOpen, Op: op, Dir: dir, Err: err}
}

func ioError(op, name string, err error) *Error {
	return &Error{Code: ErrCodeIO, Op: op, Name: name, Err: err}
}
