package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions the callers branch on.
var (
	// ErrUnavailable means no usable response arrived at all (connection
	// refused, DNS failure, timeout).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the server rejected the bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials means a login attempt was rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound means the requested record does not exist. It also covers
	// successful responses that carry no payload.
	ErrNotFound = errors.New("not found")
)

// Error is a non-2xx response that does not map onto a sentinel. It keeps
// the status code and whatever message the server included.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}
