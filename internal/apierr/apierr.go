// Package apierr defines the closed set of API error kinds raised by handlers,
// plus the wrappers used for request validation and datastore failures.
//
// Every kind binds a fixed HTTP status and a default message that callers may
// override with a specific detail. The HTTP layer translates these values into
// the response envelope in exactly one place (middleware.Errors), so handlers
// never format error responses themselves.
//
// Usage:
//
//	if post == nil {
//	    _ = c.Error(apierr.NotFound("Post not found."))
//	    return
//	}
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tags an Error with its place in the taxonomy.
type Kind string

const (
	KindBadRequest          Kind = "bad_request"
	KindForbidden           Kind = "forbidden"
	KindNotFound            Kind = "not_found"
	KindConflict            Kind = "conflict"
	KindUnprocessableEntity Kind = "unprocessable_entity"
	KindRateLimitExceeded   Kind = "rate_limit_exceeded"
	KindInternalServerError Kind = "internal_server_error"

	// KindHTTP marks framework-level errors (unmatched route, wrong method,
	// oversized body) that carry an arbitrary status.
	KindHTTP Kind = "http"
)

// Default messages, one per kind.
const (
	MsgBadRequest          = "Bad request"
	MsgForbidden           = "Action forbidden"
	MsgNotFound            = "Resource not found"
	MsgConflict            = "Conflict with existing resource"
	MsgUnprocessableEntity = "Unprocessable entity"
	MsgRateLimitExceeded   = "Rate limit exceeded. Try again later."
	MsgInternalServerError = "Internal server error"
)

// Error is an HTTP-status-tagged API error.
type Error struct {
	Kind   Kind
	Status int
	Detail string
}

// Error implements the error interface and returns the detail message.
func (e *Error) Error() string { return e.Detail }

// Is reports kind equality so callers can write errors.Is(err, apierr.NotFound()).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Status == e.Status
}

func newError(kind Kind, status int, def string, detail []string) *Error {
	msg := def
	if len(detail) > 0 && detail[0] != "" {
		msg = detail[0]
	}
	return &Error{Kind: kind, Status: status, Detail: msg}
}

// BadRequest returns a 400 error.
func BadRequest(detail ...string) *Error {
	return newError(KindBadRequest, http.StatusBadRequest, MsgBadRequest, detail)
}

// Forbidden returns a 403 error.
func Forbidden(detail ...string) *Error {
	return newError(KindForbidden, http.StatusForbidden, MsgForbidden, detail)
}

// NotFound returns a 404 error.
func NotFound(detail ...string) *Error {
	return newError(KindNotFound, http.StatusNotFound, MsgNotFound, detail)
}

// Conflict returns a 409 error.
func Conflict(detail ...string) *Error {
	return newError(KindConflict, http.StatusConflict, MsgConflict, detail)
}

// UnprocessableEntity returns a 422 error.
func UnprocessableEntity(detail ...string) *Error {
	return newError(KindUnprocessableEntity, http.StatusUnprocessableEntity, MsgUnprocessableEntity, detail)
}

// RateLimitExceeded returns a 429 error.
func RateLimitExceeded(detail ...string) *Error {
	return newError(KindRateLimitExceeded, http.StatusTooManyRequests, MsgRateLimitExceeded, detail)
}

// InternalServerError returns a 500 error.
func InternalServerError(detail ...string) *Error {
	return newError(KindInternalServerError, http.StatusInternalServerError, MsgInternalServerError, detail)
}

// HTTP returns a framework-level error with an arbitrary status. An empty
// detail falls back to the standard status text.
func HTTP(status int, detail string) *Error {
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &Error{Kind: KindHTTP, Status: status, Detail: detail}
}

// RequestValidationError wraps a failure to bind or validate the request
// shape. Loc names where the offending input came from: "body", "query" or
// "path".
type RequestValidationError struct {
	Loc string
	Err error
}

// RequestValidation wraps err as a request-shape validation failure.
func RequestValidation(loc string, err error) *RequestValidationError {
	return &RequestValidationError{Loc: loc, Err: err}
}

func (e *RequestValidationError) Error() string {
	return fmt.Sprintf("request validation (%s): %v", e.Loc, e.Err)
}

func (e *RequestValidationError) Unwrap() error { return e.Err }

// DatastoreError wraps a failure reported by the ORM or database driver.
// Its message is the underlying error text.
type DatastoreError struct {
	Op  string
	Err error
}

// Datastore wraps err as a datastore failure. A nil err yields nil.
func Datastore(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *DatastoreError
	if errors.As(err, &de) {
		return err
	}
	return &DatastoreError{Op: op, Err: err}
}

func (e *DatastoreError) Error() string { return e.Err.Error() }

func (e *DatastoreError) Unwrap() error { return e.Err }
