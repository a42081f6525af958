package core

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is returned when caller-supplied input is rejected before any network call.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// ApiError is returned when the remote API responded with a non-2xx status,
// or with a 2xx envelope reporting `success: false` (Rejected).
type ApiError struct {
	Status   int
	Message  string
	Rejected bool
}

func (err *ApiError) Error() string {
	return fmt.Sprintf("api error %d: %s", err.Status, err.Message)
}

// Unauthorized reports whether the remote API rejected the session token.
func (err *ApiError) Unauthorized() bool {
	return err.Status == http.StatusUnauthorized
}

// NetworkError is returned when no response was received: connection failure, timeout or cancellation.
type NetworkError struct {
	Cause error
}

func (err *NetworkError) Error() string {
	return "network error: " + err.Cause.Error()
}

func (err *NetworkError) Unwrap() error { return err.Cause }

// AuthorizationDenied is returned when the session gate or a pre-flight check rejects an operation.
type AuthorizationDenied struct {
	Reason string
}

func NewAuthorizationDenied(reason string) error {
	return &AuthorizationDenied{Reason: reason}
}

func (err *AuthorizationDenied) Error() string {
	return err.Reason
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}

// AsApiError unwraps err down to an *ApiError, if any.
func AsApiError(err error) (*ApiError, bool) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ErrorMessage returns the message a user should see for err.
// Messages coming from the remote API or from local checks are kept verbatim;
// anything else (network failures, decoding errors...) falls back to `generic`.
func ErrorMessage(err error, generic string) string {
	if err == nil {
		return ""
	}
	var (
		apiErr   *ApiError
		denied   *AuthorizationDenied
		validErr *ValidationError
	)
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
	case errors.As(err, &denied):
		if denied.Reason != "" {
			return denied.Reason
		}
	case errors.As(err, &validErr):
		if msg := validErr.Error(); msg != "" {
			return msg
		}
	}
	return generic
}
