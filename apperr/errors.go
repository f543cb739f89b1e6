package apperr

import (
	"errors"
	"fmt"
)

// Type categorizes an application error. Handlers map each type to one HTTP status.
type Type string

const (
	TypeValidation         Type = "VALIDATION"
	TypeInvalidID          Type = "INVALID_ID"
	TypeNotFound           Type = "NOT_FOUND"
	TypeUnauthenticated    Type = "UNAUTHENTICATED"
	TypeInvalidCredentials Type = "INVALID_CREDENTIALS"
	TypeConflict           Type = "CONFLICT"
	TypeInternal           Type = "INTERNAL"
)

// Error is the error type returned across service boundaries.
type Error struct {
	Type    Type
	Message string
	// Fields maps a request field to a human readable message.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string, fields map[string]string) error {
	return &Error{Type: TypeValidation, Message: message, Fields: fields}
}

// ValidationField is shorthand for a validation error on a single field.
func ValidationField(field, message string) error {
	return Validation("Validation failed", map[string]string{field: message})
}

func InvalidID(message string) error {
	return &Error{Type: TypeInvalidID, Message: message}
}

func NotFound(message string) error {
	return &Error{Type: TypeNotFound, Message: message}
}

func Unauthenticated(message string) error {
	return &Error{Type: TypeUnauthenticated, Message: message}
}

func InvalidCredentials() error {
	return &Error{Type: TypeInvalidCredentials, Message: "Invalid credentials"}
}

func Conflict(message string, err error) error {
	return &Error{Type: TypeConflict, Message: message, Err: err}
}

func Internal(message string, err error) error {
	return &Error{Type: TypeInternal, Message: message, Err: err}
}

// Wrap adds context to err, keeping its type when it already is an *Error.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return &Error{
			Type:    appErr.Type,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Fields:  appErr.Fields,
			Err:     appErr.Err,
		}
	}
	return Internal(message, err)
}

// TypeOf reports the type of err. Plain errors are internal.
func TypeOf(err error) Type {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return TypeInternal
}

func Is(err error, t Type) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Type == t
}

func IsNotFound(err error) bool {
	return Is(err, TypeNotFound)
}

func IsValidation(err error) bool {
	return Is(err, TypeValidation)
}

// FieldsOf returns the per-field messages carried by err, if any.
func FieldsOf(err error) map[string]string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}

// MessageOf returns the client-facing message of err.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Server Error"
}
