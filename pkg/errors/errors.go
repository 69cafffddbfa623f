// Package errors provides structured error types for graphlearn.
//
// Errors carry a machine-readable [Code] so that the CLI, the HTTP server and
// library callers can react to a failure class without matching on message
// text:
//
//	err := errors.New(errors.ErrCodeDanglingParent, "node %q: parent %q not found", id, parent)
//	if errors.Is(err, errors.ErrCodeDanglingParent) {
//	    // report the offending node
//	}
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: input that cannot be decoded or laid out
//   - NOT_FOUND / *_NOT_FOUND: missing resources
//   - NETWORK_ERROR, TIMEOUT: remote sources
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
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
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidURL      Code = "INVALID_URL"

	// Tree shape errors, reported before layout runs
	ErrCodeDuplicateNode   Code = "DUPLICATE_NODE"
	ErrCodeNoRoot          Code = "NO_ROOT"
	ErrCodeMultipleRoots   Code = "MULTIPLE_ROOTS"
	ErrCodeDanglingParent  Code = "DANGLING_PARENT"
	ErrCodeCycle           Code = "CYCLE"
	ErrCodeUnreachableNode Code = "UNREACHABLE_NODE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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

// IsInvalid reports whether err carries one of the input or tree-shape codes,
// i.e. whether the caller, not the system, is at fault.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidDocument, ErrCodeInvalidFormat,
		ErrCodeInvalidConfig, ErrCodeInvalidURL,
		ErrCodeDuplicateNode, ErrCodeNoRoot, ErrCodeMultipleRoots,
		ErrCodeDanglingParent, ErrCodeCycle, ErrCodeUnreachableNode:
		return true
	}
	return false
}
