package usecase

import (
	"errors"
)

// Error kinds. Handlers map them to status codes with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrBadRequest      = errors.New("bad request")
	ErrConflict        = errors.New("conflict")
	ErrExpired         = errors.New("expired")
	ErrInvalidCode     = errors.New("invalid code")
	ErrTooManyRequests = errors.New("too many requests")
	ErrValidation      = errors.New("validation failed")
	ErrInternal        = errors.New("internal error")
)

// Error is a client-facing failure: a kind plus the message shown to the user.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func validationError(fields map[string]string) *Error {
	return &Error{Kind: ErrValidation, Message: "Validation failed", Fields: fields}
}

// internalError hides the cause from the client. The caller logs it.
func internalError(message string) *Error {
	return &Error{Kind: ErrInternal, Message: message}
}
