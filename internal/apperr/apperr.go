// Package apperr defines the error taxonomy shared by the providers, the
// snapshot service and the HTTP layer. Every failure crossing a package
// boundary is classified into a Kind so callers can map it to an exit code
// or an HTTP status without inspecting error strings.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Kind classifies a failure for transport mapping and logging.
type Kind string

const (
	KindInvalidArgument     Kind = "invalid_argument"
	KindNotFound            Kind = "not_found"
	KindUnauthorized        Kind = "unauthorized"
	KindRateLimited         Kind = "rate_limited"
	KindTimeout             Kind = "timeout"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindMalformedResponse   Kind = "malformed_response"
	KindInternal            Kind = "internal"
)

// Error carries an errbuilder error plus the classification the rest of
// the application dispatches on.
type Error struct {
	*errbuilder.ErrBuilder
	Kind       Kind      `json:"kind"`
	HTTPStatus int       `json:"-"`
	ResetAt    time.Time `json:"reset_at,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.ErrBuilder.Msg)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.ErrBuilder.Unwrap()
}

func newError(builder *errbuilder.ErrBuilder, kind Kind, status int) *Error {
	return &Error{ErrBuilder: builder, Kind: kind, HTTPStatus: status}
}

// InvalidArgument reports a caller mistake. fields may carry per-field
// validation failures that end up in the error details.
func InvalidArgument(message string, fields map[string]error) *Error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message)

	if len(fields) > 0 {
		errorMap := errbuilder.ErrorMap{}
		for field, ferr := range fields {
			errorMap.Set(field, ferr)
		}
		builder = builder.WithDetails(errbuilder.NewErrDetails(errorMap))
	}

	return newError(builder, KindInvalidArgument, http.StatusBadRequest)
}

// NotFound reports that the requested repository or resource does not exist.
func NotFound(message string, cause error) *Error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(message)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return newError(builder, KindNotFound, http.StatusNotFound)
}

// Unauthorized reports a rejected or missing upstream credential.
func Unauthorized(message string, cause error) *Error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeUnauthenticated).
		WithMsg(message)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return newError(builder, KindUnauthorized, http.StatusUnauthorized)
}

// RateLimited reports an exhausted upstream quota. resetAt may be zero
// when the upstream did not say when the quota returns.
func RateLimited(message string, resetAt time.Time, cause error) *Error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeResourceExhausted).
		WithMsg(message)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	if !resetAt.IsZero() {
		errorMap := errbuilder.ErrorMap{}
		errorMap.Set("retry_after", errors.New(resetAt.UTC().Format(time.RFC3339)))
		builder = builder.WithDetails(errbuilder.NewErrDetails(errorMap))
	}

	err := newError(builder, KindRateLimited, http.StatusTooManyRequests)
	err.ResetAt = resetAt
	return err
}

// Timeout reports that an operation ran out of time.
func Timeout(message string, cause error) *Error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeDeadlineExceeded).
		WithMsg(message)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return newError(builder, KindTimeout, http.StatusGatewayTimeout)
}

// UpstreamUnavailable reports that the upstream API could not be reached
// or answered with a server-side failure.
func UpstreamUnavailable(message string, cause error) *Error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg(message)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return newError(builder, KindUpstreamUnavailable, http.StatusBadGateway)
}

// MalformedResponse reports an upstream answer that could not be
// interpreted, for example a snapshot violating its own invariants.
func MalformedResponse(message string, cause error) *Error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(message)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return newError(builder, KindMalformedResponse, http.StatusBadGateway)
}

// Internal reports a failure that is nobody's fault but ours.
func Internal(message string, cause error) *Error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(message)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return newError(builder, KindInternal, http.StatusInternalServerError)
}

// From classifies an arbitrary error. Errors already carrying a Kind pass
// through unchanged, context errors become timeouts, everything else is
// internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Timeout("operation cancelled or timed out", err)
	}
	return Internal("unexpected error", err)
}

// KindOf extracts the Kind from err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// StatusOf extracts the HTTP status from err, or 500 for unclassified errors.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
