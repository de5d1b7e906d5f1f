// Package apperr defines the error taxonomy surfaced by the API. Every error
// carries a kind that maps to an HTTP status and a stable reason string that
// clients can match on.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an application error.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindInvalidArgument Kind = "invalid_argument"
	KindInvalidState    Kind = "invalid_state"
	// KindUpstreamUnavailable covers oracle timeouts and transport failures.
	// It is retryable; malformed-but-received oracle output is not an error
	// at all (the grading engine substitutes its fallback record instead).
	KindUpstreamUnavailable Kind = "upstream_unavailable"
)

// Error is an application error with a machine-checkable reason.
type Error struct {
	Kind   Kind
	Reason string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the kind to its HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindInvalidArgument:
		return fiber.StatusBadRequest
	case KindInvalidState:
		return fiber.StatusConflict
	case KindUpstreamUnavailable:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func NotFound(reason, msg string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason, Msg: msg}
}

func InvalidArgument(reason, msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Reason: reason, Msg: msg}
}

func InvalidState(reason, msg string) *Error {
	return &Error{Kind: KindInvalidState, Reason: reason, Msg: msg}
}

func UpstreamUnavailable(reason, msg string, err error) *Error {
	return &Error{Kind: KindUpstreamUnavailable, Reason: reason, Msg: msg, Err: err}
}

// As unwraps err into an *Error, or nil if it is not one.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr := As(err)
	return appErr != nil && appErr.Kind == kind
}
