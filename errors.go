package dweeter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dweeter/client-go/internal/api"
	"github.com/dweeter/client-go/internal/crypto"
	"github.com/dweeter/client-go/internal/envelope"
)

// Error kinds. Every *Error matches exactly one of these with errors.Is.
var (
	// ErrInvalidInput is returned by Send, before any board call, for a nil
	// map, a map using a reserved field name, or data that cannot be
	// serialized.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEncoding is returned when board content is not valid text in the
	// mailbox encoding.
	ErrEncoding = errors.New("encoding error")

	// ErrPadding is returned when a ciphertext decrypts to malformed padding:
	// the wrong secret, the wrong encoding, or a corrupted entry.
	ErrPadding = errors.New("padding error")

	// ErrDecode is returned when decrypted text is not UTF-8 or the payload
	// is not a well-formed JSON object.
	ErrDecode = errors.New("decode error")

	// ErrIntegrity is returned when the embedded timestamp does not match
	// the payload's outer key, or the payload does not hold exactly one
	// entry.
	ErrIntegrity = errors.New("integrity error")

	// ErrNetwork is returned for any failure talking to the board.
	ErrNetwork = errors.New("network error")
)

// Board failures that can be checked with errors.Is.
var (
	// ErrRateLimited is returned when the board throttles the caller.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrThingNotFound is returned when the board holds nothing for a thing.
	ErrThingNotFound = errors.New("thing not found")
)

// DweeterError is implemented by all errors returned by this package.
type DweeterError interface {
	error
	DweeterError() // marker method
}

// Error is the failure result of a mailbox or channel operation.
type Error struct {
	Op   string // "send", "receive", "history", ...
	Kind error  // one of the kind sentinels above
	Err  error  // underlying cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

// Is matches the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// DweeterError implements the DweeterError interface.
func (e *Error) DweeterError() {}

// APIError represents a failure reported by the bulletin board.
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
	case 404:
		return target == ErrThingNotFound
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// DweeterError implements the DweeterError interface.
func (e *APIError) DweeterError() {}

// NetworkError represents a transport-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DweeterError implements the DweeterError interface.
func (e *NetworkError) DweeterError() {}

// TimeoutError is returned by WaitForMessage when its own timeout expires.
type TimeoutError struct {
	Operation string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %v", e.Operation, e.Timeout)
}

// Unwrap returns context.DeadlineExceeded.
func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}

// DweeterError implements the DweeterError interface.
func (e *TimeoutError) DweeterError() {}

// wrapError converts internal board errors to public errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	return err
}

// kindOf classifies an error from the envelope or crypto layer. Board
// failures surfaced by a Channel are ErrNetwork; any other failure to open
// a record is ErrDecode.
func kindOf(err error) error {
	var apiErr *api.APIError
	var netErr *api.NetworkError
	switch {
	case errors.Is(err, envelope.ErrBoard),
		errors.As(err, &apiErr),
		errors.As(err, &netErr):
		return ErrNetwork
	case errors.Is(err, crypto.ErrInvalidPadding),
		errors.Is(err, crypto.ErrInvalidCiphertextSize):
		return ErrPadding
	case errors.Is(err, crypto.ErrInvalidEncoding),
		errors.Is(err, crypto.ErrUnknownCodec),
		errors.Is(err, envelope.ErrNonText):
		return ErrEncoding
	default:
		// envelope.ErrInvalidUTF8 and anything else met while opening.
		return ErrDecode
	}
}
