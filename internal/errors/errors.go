// Package errors provides coded domain errors for the attendance insights API.
//
// Usage:
//
//	// In the aggregation layer - return typed errors
//	if !ds.HasColumn(field) {
//	    return nil, errors.FieldNotFound(field)
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrFieldNotFound) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeFieldNotFound      Code = "FIELD_NOT_FOUND"
	CodeValidation         Code = "VALIDATION"
	CodeDatasetUnavailable Code = "DATASET_UNAVAILABLE"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeInternal           Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeFieldNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeDatasetUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// Sentinel errors for use with errors.Is().
var (
	ErrFieldNotFound      = &Error{Code: CodeFieldNotFound, Message: "field not found"}
	ErrValidation         = &Error{Code: CodeValidation, Message: "validation error"}
	ErrDatasetUnavailable = &Error{Code: CodeDatasetUnavailable, Message: "dataset unavailable"}
)

// FieldNotFound reports an aggregation over a column the dataset does not have.
func FieldNotFound(field string) *Error {
	return &Error{
		Code:    CodeFieldNotFound,
		Message: fmt.Sprintf("field %q not found in dataset", field),
		Details: map[string]string{"field": field},
	}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// DatasetUnavailable creates a dataset error; these are fatal at startup.
func DatasetUnavailable(msg string) *Error {
	return &Error{Code: CodeDatasetUnavailable, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
