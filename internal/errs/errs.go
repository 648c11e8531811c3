// Package errs defines the error taxonomy shared by handlers and services.
// Handlers translate kinds into HTTP status codes at the route boundary;
// everything below the boundary wraps causes without deciding status.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for route-boundary handling.
type Kind int

const (
	// Validation marks a malformed or incomplete client request.
	Validation Kind = iota + 1
	// Upstream marks a failed or timed-out hosted-service call.
	Upstream
	// Persistence marks a relational store failure.
	Persistence
)

// Error carries a kind alongside the wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validationf builds a client-facing validation error.
func Validationf(format string, args ...any) error {
	return &Error{Kind: Validation, Msg: fmt.Sprintf(format, args...)}
}

// Upstreamf wraps a hosted-service failure with an operation label.
func Upstreamf(op string, err error) error {
	return &Error{Kind: Upstream, Msg: op, Err: err}
}

// Persistencef wraps a store failure with an operation label.
func Persistencef(op string, err error) error {
	return &Error{Kind: Persistence, Msg: op, Err: err}
}

// KindOf returns the classified kind, or zero when the error carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// HTTPStatus maps an error to the status code the route should return.
// Unclassified errors are treated as internal failures.
func HTTPStatus(err error) int {
	if KindOf(err) == Validation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to expose to clients. Upstream and
// persistence details stay in server-side logs only.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "internal server error"
	}
	switch e.Kind {
	case Validation:
		return e.Msg
	case Upstream, Persistence:
		return "internal server error"
	default:
		return "internal server error"
	}
}
