// Package apperrors defines the error kinds the service distinguishes and
// the single place where kinds are mapped to HTTP status codes. Callers
// match kinds with errors.Is against the exported sentinel values.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for transport-level mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindDuplicateEmail
	KindNotFound
)

// Sentinels, one per kind. Errors created by the constructors below unwrap
// to these, so errors.Is(err, ErrAuthenticationFailed) works regardless of
// the message attached at the call site.
var (
	ErrInternal             = &Error{kind: KindInternal, message: "internal server error"}
	ErrValidation           = &Error{kind: KindValidation, message: "validation failed"}
	ErrAuthenticationFailed = &Error{kind: KindAuthentication, message: "invalid email or password"}
	ErrAuthorizationDenied  = &Error{kind: KindAuthorization, message: "access denied"}
	ErrDuplicateEmail       = &Error{kind: KindDuplicateEmail, message: "email already exists"}
	ErrNotFound             = &Error{kind: KindNotFound, message: "data not found"}
)

type Error struct {
	kind    Kind
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}
	return e.message
}

func (e *Error) Unwrap() error { return e.err }

// Is makes any error of the same kind match the kind's sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == t.kind
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the client-safe message, without any wrapped cause.
func (e *Error) Message() string { return e.message }

// New builds an error of the given kind with a client-safe message.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Wrap attaches an underlying cause to a kinded error. The cause is kept for
// logs and errors.Is chains but never surfaces in the client message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{kind: kind, message: message, err: err}
}

// KindOf extracts the kind from an error chain, defaulting to KindInternal
// so unexpected failures (lost DB connectivity and the like) surface as
// server errors rather than being folded into a client-error status.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message for an error, hiding internals
// behind a generic message when the error carries no kind.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.message
	}
	return "internal server error"
}

// StatusCode is the central kind -> HTTP status mapping. Validation,
// duplicate-email and authentication failures keep the 422 the original API
// exposed; everything unclassified is a 500.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation, KindDuplicateEmail, KindAuthentication:
		return http.StatusUnprocessableEntity
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
