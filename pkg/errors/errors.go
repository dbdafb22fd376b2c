// Package errors provides structured error types for levelkit.
//
// Every failure the level store reports carries a machine-readable Code so
// that callers (the CLI, an editor front-end) can tell "no folder chosen
// yet" apart from "file vanished" or "the volume went away mid-write"
// without string matching.
//
// # Error Codes
//
//   - NO_ROOT: no external level folder has been configured (or it can no
//     longer be opened)
//   - NOT_FOUND: the addressed entry does not exist in that location
//   - ALREADY_EXISTS: a copy, rename or template target name is taken
//   - IO_ERROR: a read or write failed part way
//   - DECODE_FAILED: document content could not be decoded
//   - INVALID_*: input validation failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeAlreadyExists, "%s already exists", name)
//	if errors.Is(err, errors.ErrCodeAlreadyExists) {
//	    // ask the user for another name
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "export %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidName      Code = "INVALID_NAME"
	ErrCodeInvalidReference Code = "INVALID_REFERENCE"

	// Configuration errors
	ErrCodeNoRoot Code = "NO_ROOT"

	// Resource state errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeAlreadyExists Code = "ALREADY_EXISTS"

	// Transfer and content errors
	ErrCodeIO           Code = "IO_ERROR"
	ErrCodeDecodeFailed Code = "DECODE_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code,
// so an IO_ERROR wrapping a NOT_FOUND matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
