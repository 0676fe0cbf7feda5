// Package errors provides structured error types for topicnet.
//
// Every error that crosses a package boundary toward the CLI or the HTTP
// server carries a machine-readable [Code]. The CLI prints [UserMessage];
// the server maps codes to HTTP status codes.
//
// # Error Codes
//
//   - INVALID_*: input or configuration validation failures
//   - MALFORMED_ROW: a single input row that was skipped
//   - RESOURCE_UNAVAILABLE: the dataset could not be loaded at all
//   - NOT_FOUND, NETWORK_ERROR, TIMEOUT: lookup and transport failures
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "missing column %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeResourceUnavailable, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Input and configuration
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidSource Code = "INVALID_SOURCE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeMalformedRow  Code = "MALFORMED_ROW"

	// Loading
	ErrCodeResourceUnavailable Code = "RESOURCE_UNAVAILABLE"
	ErrCodeNotFound            Code = "NOT_FOUND"
	ErrCodeNetwork             Code = "NETWORK_ERROR"
	ErrCodeTimeout             Code = "TIMEOUT"

	// Everything else
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Exit statuses returned by [Code.ExitCode].
const (
	ExitFailure     = 1
	ExitUsage       = 2
	ExitUnavailable = 3
)

// HTTPStatus returns the status the server answers with for c.
// Unknown and empty codes are internal errors.
func (c Code) HTTPStatus() int {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidSource, ErrCodeMalformedRow:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeResourceUnavailable, ErrCodeNetwork:
		return http.StatusBadGateway
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// ExitCode returns the process exit status for c: [ExitUsage] when the
// user can fix the invocation, [ExitUnavailable] when the data could not
// be reached, [ExitFailure] otherwise.
func (c Code) ExitCode() int {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidSource, ErrCodeInvalidConfig:
		return ExitUsage
	case ErrCodeResourceUnavailable, ErrCodeNotFound, ErrCodeNetwork, ErrCodeTimeout:
		return ExitUnavailable
	default:
		return ExitFailure
	}
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain has the given code, so a
// RESOURCE_UNAVAILABLE wrapped by a caller's INVALID_CONFIG still matches.
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

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HTTPStatus returns GetCode(err).HTTPStatus().
func HTTPStatus(err error) int {
	return GetCode(err).HTTPStatus()
}

// ExitCode returns GetCode(err).ExitCode(), or 0 for a nil error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return GetCode(err).ExitCode()
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
