// Package errors provides structured error types for the card fan.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP service
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (bad configuration, bad keys)
//   - OUT_OF_RANGE, DUPLICATE_ITEM: collection edits that cannot apply
//   - NOT_FOUND: lookups of items that are not in the fan
//   - INVARIANT_VIOLATION, UNKNOWN_STATUS: internal inconsistencies; these are
//     fatal and are raised with panic by the fan
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOutOfRange, "index %d out of range [0,%d]", i, n)
//	if errors.Is(err, errors.ErrCodeOutOfRange) {
//	    // Handle bad index
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "load %s", path)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidKey    Code = "INVALID_KEY"

	// Collection edit errors
	ErrCodeOutOfRange    Code = "OUT_OF_RANGE"
	ErrCodeDuplicateItem Code = "DUPLICATE_ITEM"
	ErrCodeNotFound      Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal      Code = "INTERNAL_ERROR"
	ErrCodeInvariant     Code = "INVARIANT_VIOLATION"
	ErrCodeUnknownStatus Code = "UNKNOWN_STATUS"
	ErrCodeUnsupported   Code = "UNSUPPORTED"
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

// IsFatal reports whether err signals an internal inconsistency that must
// abort the current operation instead of being handled.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvariant, ErrCodeUnknownStatus:
		return true
	}
	return false
}
