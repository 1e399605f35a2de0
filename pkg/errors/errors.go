// Package errors provides structured error types for seatplan.
//
// The layout compiler itself never fails. Errors come from its boundaries:
// loading venue and override files, validating what they contain, the cache
// and the editing-session store. Every such error carries a machine-readable
// [Code] so the CLI (or a host) can react to the category without string
// matching.
//
// # Error Codes
//
//   - INVALID_*: a venue, section or override file failed validation
//   - *_NOT_FOUND: a file or session does not exist
//   - INTERNAL_ERROR: unexpected failures (I/O, encoding)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSection, "section %q: rows must be positive", id)
//	if errors.Is(err, errors.ErrCodeInvalidSection) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "parse %s", path)
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
	ErrCodeInvalidVenue    Code = "INVALID_VENUE"
	ErrCodeInvalidSection  Code = "INVALID_SECTION"
	ErrCodeInvalidOverride Code = "INVALID_OVERRIDE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSectionNotFound Code = "SECTION_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"
	ErrCodeSessionExpired  Code = "SESSION_EXPIRED"

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
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// A List matches if any of its entries does.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) && e.Code == code {
		return true
	}
	var l List
	if errors.As(err, &l) {
		for _, e := range l {
			if e.Code == code {
				return true
			}
		}
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// For a List it is the code of the first entry.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var l List
	if errors.As(err, &l) && len(l) > 0 {
		return l[0].Code
	}
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
	var l List
	if errors.As(err, &l) {
		msgs := make([]string, len(l))
		for i, e := range l {
			msgs[i] = e.Message
		}
		return strings.Join(msgs, "; ")
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// List collects the problems found while validating one input, so a venue
// file reports every broken section at once instead of the first.
type List []*Error

// Error implements the error interface.
func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Add appends a new coded error.
func (l *List) Add(code Code, format string, args ...any) {
	*l = append(*l, New(code, format, args...))
}

// Err returns l as an error, or nil when it is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
