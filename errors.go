package fictionfetch

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are machine-readable so the calling layer (CLI, web UI) can map each
// failure kind to a user-facing message without string matching.
const (
	// Generic codes.
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// Slug parsing.
	EINVALIDURL    = "invalid_url"
	EINVALIDFORMAT = "invalid_format"
	EINVALIDID     = "invalid_id"

	// Embedded chapter array extraction.
	EVARIABLENOTFOUND = "variable_not_found"
	EMALFORMEDARRAY   = "malformed_array"
	EARRAYJSON        = "invalid_array_json"
	ENOTALIST         = "not_a_list"
	EMISSINGID        = "missing_id"

	// Chapter fetching.
	ECONTENTNOTFOUND  = "content_not_found"
	EHTTP             = "http_error"
	ERETRIESEXHAUSTED = "retries_exhausted"
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("fictionfetch error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper to construct an *Error with formatting.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of the error, if it is an *Error.
// Returns EINTERNAL for non-application errors and "" for nil.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the error, if it is an *Error.
// Returns a generic message for non-application errors and "" for nil.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
