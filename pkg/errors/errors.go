// Package errors carries the coded errors returned by repositories and
// services. Transports map codes to their own status values.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code is a stable error class a client can act on.
type Code string

const (
	CodeUnknown Code = "unknown"
	// CodeInvalid covers rejected input: missing required fields, unknown
	// fields, values of the wrong type and statuses outside an entity's set.
	CodeInvalid Code = "invalid"
	// CodeNotFound is also returned for rows owned by another user.
	CodeNotFound      Code = "not_found"
	CodeAlreadyExists Code = "already_exists"
	CodeUnauthorized  Code = "unauthorized"
	CodeInternal      Code = "internal"
	CodeUnavailable   Code = "unavailable"
	CodeDeadline      Code = "deadline_exceeded"
)

// AppError pairs a code and client-safe message with the underlying cause.
type AppError struct {
	Code    Code
	Message string
	Err     error
	Meta    map[string]any
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithMeta attaches a detail such as the offending field name.
func (e *AppError) WithMeta(k string, v any) *AppError {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[k] = v
	return e
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return New(code, message)
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the outermost AppError in err's chain. A
// datastore failure caused by an expired request context reports
// CodeDeadline rather than CodeInternal.
func CodeOf(err error) Code {
	var ae *AppError
	if !errors.As(err, &ae) {
		return CodeUnknown
	}
	if ae.Code == CodeInternal && errors.Is(err, context.DeadlineExceeded) {
		return CodeDeadline
	}
	return ae.Code
}

// IsCode reports whether CodeOf(err) is code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
