// Package errors provides structured error types for the copyviz application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes map to the failure taxonomy of the copying-path visualizer:
//
//   - MALFORMED_GENEALOGY: an edge references an unknown breakpoint,
//     has a non-positive interval, or overlaps another edge for the
//     same child
//   - BAD_NORMALIZATION: the intensity normalization constant cannot
//     be computed, or a normalized value exceeds 1
//   - DIMENSION_MISMATCH: site counts of samples, ancestors, and the
//     site index disagree
//   - INVALID_TRACE: a trace document is structurally broken
//   - INVALID_STYLE / INVALID_FORMAT: bad render configuration
//
// All of these are fatal: the visualizer is an offline deterministic
// batch computation with no transient-failure sources, so nothing is
// retried.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedGenealogy, "edge references unknown position %g", pos)
//	if errors.Is(err, errors.ErrCodeMalformedGenealogy) {
//	    // Handle genealogy error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidTrace, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Genealogy and haplotype input errors
	ErrCodeMalformedGenealogy Code = "MALFORMED_GENEALOGY"
	ErrCodeBadNormalization   Code = "BAD_NORMALIZATION"
	ErrCodeDimensionMismatch  Code = "DIMENSION_MISMATCH"
	ErrCodeInvalidTrace       Code = "INVALID_TRACE"

	// Render configuration errors
	ErrCodeInvalidStyle  Code = "INVALID_STYLE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
