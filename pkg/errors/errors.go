// Package errors provides structured error types for verbump.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The engine raises a small, fixed set of terminal conditions:
//   - MALFORMED_VERSION_COMPONENT: unparsable major/minor/patch/prerelease/build text
//   - MISSING_PRERELEASE_IDENTIFIER: a prerelease increment without an identifier
//   - REGISTRY_UNAVAILABLE: a registry call failed (network, 5xx, not found)
//   - UNPARSABLE_REGISTRY_RESPONSE: a registry answered with a body we cannot read
//   - NOT_A_PACKAGE_MANAGER: an agent without a registry was asked to fetch
//
// None of them are retried internally; the caller decides whether to re-invoke.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedVersion, "invalid patch %q", raw)
//	if errors.Is(err, errors.ErrCodeMalformedVersion) {
//	    // Handle input defect
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRegistryUnavailable, origErr, "fetch %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Version algebra and registry errors
	ErrCodeMalformedVersion    Code = "MALFORMED_VERSION_COMPONENT"
	ErrCodeMissingPrereleaseID Code = "MISSING_PRERELEASE_IDENTIFIER"
	ErrCodeNotAPackageManager  Code = "NOT_A_PACKAGE_MANAGER"
	ErrCodeRegistryUnavailable Code = "REGISTRY_UNAVAILABLE"
	ErrCodeUnparsableResponse  Code = "UNPARSABLE_REGISTRY_RESPONSE"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidPackage  Code = "INVALID_PACKAGE"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodePackageNotFound Code = "PACKAGE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

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
// so a REGISTRY_UNAVAILABLE wrapping a NOT_FOUND matches both codes.
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
// For *Error types, returns the message without the code prefix, followed by
// the cause's own user message when there is one.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// MalformedVersion reports an unparsable version component.
// Component names the part that failed ("major", "prerelease", "build", ...).
func MalformedVersion(component, raw string) *Error {
	return New(ErrCodeMalformedVersion, "malformed %s in %q", component, raw)
}
