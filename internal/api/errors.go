package api

import (
	"errors"
	"fmt"
)

// Board errors that can be checked with errors.Is.
var (
	// ErrNotFound indicates the board holds nothing for the thing.
	ErrNotFound = errors.New("thing not found")
	// ErrBadRequest indicates the board rejected the request.
	ErrBadRequest = errors.New("bad request")
	// ErrRateLimited indicates the board throttled the caller.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrMalformedResponse indicates the board replied with something that
	// is not a dweet API envelope.
	ErrMalformedResponse = errors.New("malformed board response")
)

// APIError is a failure reported by the board.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("board error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("board error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 400:
		return target == ErrBadRequest
	case 404:
		return target == ErrNotFound
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a transport-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
