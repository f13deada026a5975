// Package errors provides structured error types for chess-image-generator.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI, and HTTP service
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every failure mode of the renderer maps to one code:
//   - INVALID_NOTATION: the rules engine rejected the PGN/FEN input
//   - NOT_READY: a render was attempted before any successful position load
//   - ASSET_NOT_FOUND: unknown piece style or missing sprite file
//   - IO_ERROR: file open/write failure
//   - INVALID_INPUT: malformed configuration or request parameters
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidNotation, "bad FEN: %s", fen)
//	if errors.Is(err, errors.ErrCodeInvalidNotation) {
//	    // Handle notation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidNotation Code = "INVALID_NOTATION"
	ErrCodeInvalidColor    Code = "INVALID_COLOR"
	ErrCodeInvalidSize     Code = "INVALID_SIZE"

	// Lifecycle errors
	ErrCodeNotReady Code = "NOT_READY"

	// Resource errors
	ErrCodeAssetNotFound Code = "ASSET_NOT_FOUND"
	ErrCodeIO            Code = "IO_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
