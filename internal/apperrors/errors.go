package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the API client and the mock server.
var (
	// Authentication & session
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("action forbidden")
	ErrSessionExpired     = errors.New("session expired")

	// Validation
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidStatus    = errors.New("invalid ticket status")
	ErrInvalidPriority  = errors.New("invalid ticket priority")
	ErrNoTicketsChosen  = errors.New("no tickets selected")

	// Generic
	ErrNotFound    = errors.New("resource not found")
	ErrBadRequest  = errors.New("bad request")
	ErrConflict    = errors.New("resource conflict")
	ErrRateLimited = errors.New("rate limit exceeded")
	ErrInternal    = errors.New("internal server error")
)

// APIError carries the server's envelope message and HTTP status for a
// failed request. The message is what the console surfaces to the
// operator when present.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError builds an APIError, mapping well-known status codes onto
// sentinel errors so callers can use errors.Is.
func NewAPIError(statusCode int, message string) *APIError {
	var err error
	switch statusCode {
	case 400:
		err = ErrBadRequest
	case 401:
		err = ErrUnauthorized
	case 403:
		err = ErrForbidden
	case 404:
		err = ErrNotFound
	case 409:
		err = ErrConflict
	case 429:
		err = ErrRateLimited
	default:
		if statusCode >= 500 {
			err = ErrInternal
		}
	}
	return &APIError{StatusCode: statusCode, Message: message, Err: err}
}

// UserMessage returns the server-provided message from err when it is
// an APIError, or fallback otherwise. Used when surfacing failures as
// notifications.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
