// Package errors provides structured error types for mavenizor.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the conversion library
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - MALFORMED_*: OSGi input that cannot be parsed
//   - INVALID_*: Input validation failures
//   - STRATEGY_*, COORDINATE_*, *_EMBEDDED_LIBRARY: conversion outcomes
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedVersion, "invalid version %q", s)
//	if errors.Is(err, errors.ErrCodeMalformedVersion) {
//	    // record and continue with the next bundle
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidManifest, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Malformed OSGi input
	ErrCodeMalformedVersion Code = "MALFORMED_VERSION"
	ErrCodeMalformedRange   Code = "MALFORMED_RANGE"

	// Conversion outcomes
	ErrCodeStrategyConfiguration    Code = "STRATEGY_CONFIGURATION"
	ErrCodeCoordinateCollision      Code = "COORDINATE_COLLISION"
	ErrCodeUnhandledEmbeddedLibrary Code = "UNHANDLED_EMBEDDED_LIBRARY"
	ErrCodeMissingEmbeddedLibrary   Code = "MISSING_EMBEDDED_LIBRARY"

	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidManifest   Code = "INVALID_MANIFEST"
	ErrCodeInvalidCoordinate Code = "INVALID_COORDINATE"
	ErrCodeInvalidOverride   Code = "INVALID_OVERRIDE"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"

	// Resource not found errors
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

// BundleError attributes a failure to one bundle of the input graph.
type BundleError struct {
	SymbolicName string
	Version      string
	Err          error
}

// Error implements the error interface.
func (e *BundleError) Error() string {
	return fmt.Sprintf("bundle %s_%s: %v", e.SymbolicName, e.Version, e.Err)
}

// Unwrap returns the underlying error.
func (e *BundleError) Unwrap() error {
	return e.Err
}

// Code returns the code of the wrapped error, or ErrCodeInternal.
func (e *BundleError) Code() Code {
	if c := GetCode(e.Err); c != "" {
		return c
	}
	return ErrCodeInternal
}
