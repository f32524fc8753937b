// Package errors provides structured error types for UXL.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP preview service
//   - Machine-readable error codes for programmatic handling
//   - Source-positioned diagnostics for parse failures
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Resource not found
//   - PARSE_ERROR: Any failure while parsing or validating UXL text
//   - INTERNAL_*: Unexpected internal errors
//
// # Parse Errors
//
// Every failure raised by the parser, the tree builder and the navigation graph
// builder is a [*ParseError]. It carries the source label, the 1-based line and
// column and the raw line text so hosts can print IDE-style diagnostics:
//
//	doc, err := parser.Parse(text, parser.Options{SourceName: "app.uxl"})
//	if pe, ok := errors.AsParseError(err); ok {
//	    fmt.Println(pe.Position(), pe.Message)
//	    fmt.Println(pe.Snippet())
//	}
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid canvas width: %d", w)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCache, origErr, "failed to store layout %s", key)
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
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Document errors
	ErrCodeParse  Code = "PARSE_ERROR"
	ErrCodeLayout Code = "LAYOUT_ERROR"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodePageNotFound Code = "PAGE_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Storage errors
	ErrCodeCache Code = "CACHE_ERROR"

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
// It unwraps the error chain looking for an *Error or *ParseError with a
// matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is neither an *Error nor a *ParseError.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return ErrCodeParse
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For *ParseError types, returns the positioned message.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// =============================================================================
// Parse Errors
// =============================================================================

// ParseError is the single error kind raised while turning UXL text into a
// document. Categories (tabs, indentation, quoting, unknown tags, field format,
// table shape, page ids, GOTO targets, version, canvas) are distinguished only
// by Message.
type ParseError struct {
	Message  string // Human-readable description
	Source   string // Source label, e.g. a file name
	Line     int    // 1-based line number, 0 when not tied to a line
	Col      int    // 1-based column, 0 when unknown
	LineText string // Raw text of the offending line
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Position() + ": " + e.Message
}

// Code returns the error code for this error type.
func (e *ParseError) Code() Code {
	return ErrCodeParse
}

// Position formats the location as source:line:col, omitting unknown parts.
func (e *ParseError) Position() string {
	src := e.Source
	if src == "" {
		src = "<input>"
	}
	switch {
	case e.Line > 0 && e.Col > 0:
		return fmt.Sprintf("%s:%d:%d", src, e.Line, e.Col)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d", src, e.Line)
	default:
		return src
	}
}

// Snippet returns the offending line followed by a caret under the column.
// It returns an empty string when no line text is attached.
func (e *ParseError) Snippet() string {
	if e.LineText == "" {
		return ""
	}
	if e.Col <= 0 {
		return e.LineText
	}
	pad := e.Col - 1
	if pad > len(e.LineText) {
		pad = len(e.LineText)
	}
	return e.LineText + "\n" + strings.Repeat(" ", pad) + "^"
}

// AsParseError reports whether err wraps a *ParseError and returns it.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
