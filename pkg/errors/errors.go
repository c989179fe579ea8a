// Package errors provides structured error types for tilejar.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP server and the engine
//   - Machine-readable error codes for programmatic handling
//   - A clear split between configuration errors, cancellation and
//     failures reported by external collaborators (rasterizers, writers)
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NO_VARIANTS, ZERO_PERIOD: Configuration errors raised during a layout
//   - CANCELLED: An export sequence stopped through its cancellation flag
//   - EXTERNAL: A capture or writer failure, propagated unchanged
//   - INTERNAL: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidOrder, "unknown order %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidOrder) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeExternal, origErr, "write frame %d", frame)
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
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidPreset      Code = "INVALID_PRESET"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidOrder       Code = "INVALID_ORDER"
	ErrCodeInvalidComposition Code = "INVALID_COMPOSITION"
	ErrCodeInvalidName        Code = "INVALID_NAME"
	ErrCodeInvalidPath        Code = "INVALID_PATH"

	// Configuration errors (fatal to the current computation)
	ErrCodeNoVariants Code = "NO_VARIANTS"
	ErrCodeZeroPeriod Code = "ZERO_PERIOD"

	// Playback and export
	ErrCodeCancelled Code = "CANCELLED"
	ErrCodeBusy      Code = "BUSY"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// External collaborators (rasterizer, frame writer, storage backends)
	ErrCodeExternal Code = "EXTERNAL"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL"
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
// It unwraps the error chain looking for the first *Error and compares its code.
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

// IsConfiguration reports whether err is a configuration error: a preset
// that cannot produce a layout (empty variants, zero class period).
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeNoVariants, ErrCodeZeroPeriod:
		return true
	}
	return false
}

// IsCancelled reports whether err is an export cancellation.
func IsCancelled(err error) bool {
	return Is(err, ErrCodeCancelled)
}

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidPreset, ErrCodeInvalidFormat,
		ErrCodeInvalidOrder, ErrCodeInvalidComposition, ErrCodeInvalidName, ErrCodeInvalidPath:
		return true
	}
	return false
}
