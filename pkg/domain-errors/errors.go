// Package domainerrors defines the typed error values that services return.
//
// Stores return infrastructure facts (see pkg/platform/sentinel). Services
// translate them into an *Error carrying a Code; the transport layer is the
// only place that maps a Code to a protocol status.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a failure independently of the transport.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_error"
	CodeInvariantViolation Code = "invariant_violation"
	CodeNotFound           Code = "not_found"
	CodeReferenceNotFound  Code = "reference_not_found"
	CodeAlreadyExists      Code = "already_exists"
	CodeTooManyRequests    Code = "too_many_requests"
	CodeUnavailable        Code = "service_unavailable"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
)

// FieldError describes a single offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

// Error is a domain failure with a stable code and a client-facing message.
type Error struct {
	Code    Code
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
// The cause is kept for logging and errors.Is; it is never sent to clients.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// NewValidation builds a validation error listing every offending field.
func NewValidation(fields ...FieldError) error {
	msg := "Erro de validação nos dados fornecidos"
	if len(fields) == 1 {
		msg = fields[0].Message
	}
	return &Error{Code: CodeValidation, Message: msg, Fields: fields}
}

// Field is shorthand for a single-field validation error.
func Field(field, message string) error {
	return NewValidation(FieldError{Field: field, Message: message, Type: "value_error"})
}

// HasCode reports whether any *Error in err's chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// CodeOf returns the outermost code in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost client-facing message, or "".
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// FieldErrors returns the field list of the outermost validation error.
func FieldErrors(err error) []FieldError {
	var de *Error
	if errors.As(err, &de) {
		return de.Fields
	}
	return nil
}
