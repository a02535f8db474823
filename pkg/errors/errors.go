// Package errors provides structured error types for hamcount.
//
// The ordering subsystem distinguishes three failure classes that callers
// must be able to tell apart:
//   - ENCODING_ERROR: an internal invariant of the constraint model or the
//     variable pool was violated (always a logic defect)
//   - INFEASIBLE_MODEL: the optimizing oracle proved the hard clauses
//     unsatisfiable (the encoding is broken, never a property of the graph)
//   - ORACLE_FAILURE: the oracle itself failed (resource exhaustion, fault)
//
// None of them is retried or downgraded to a partial result.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEncoding, "no variable for id %d", id)
//	if errors.Is(err, errors.ErrCodeEncoding) {
//	    // internal defect
//	}
//
//	err := errors.Wrap(errors.ErrCodeOracle, cause, "gophersat solve")
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidGraph  Code = "INVALID_GRAPH"
	ErrCodeInvalidFamily Code = "INVALID_FAMILY"
	ErrCodeInvalidOrder  Code = "INVALID_ORDER"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Ordering subsystem errors
	ErrCodeEncoding   Code = "ENCODING_ERROR"
	ErrCodeInfeasible Code = "INFEASIBLE_MODEL"
	ErrCodeOracle     Code = "ORACLE_FAILURE"

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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err's text without error code prefixes.
// Context added around an *Error with fmt.Errorf is kept, and so are the
// messages of wrapped causes. Errors without a code are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + UserMessage(e.Cause)
	}
	if prefix, ok := strings.CutSuffix(err.Error(), e.Error()); ok {
		return prefix + msg
	}
	return msg
}

// Fatal reports whether err belongs to a class that signals a defect in the
// ordering subsystem rather than bad input.
func Fatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeEncoding, ErrCodeInfeasible, ErrCodeInternal:
		return true
	}
	return false
}
