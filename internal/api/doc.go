// Package api provides an HTTP client for dweet-compatible bulletin boards.
// It handles request/response serialization, the board's
// {"this": ..., "with": ...} response envelope, and optional retry logic with
// exponential backoff for transient failures.
//
// # Client Creation
//
// The package provides two ways to create a client:
//
//   - [NewClient]: Struct-based configuration for explicit setup.
//   - [New]: Functional options pattern, defaulting to [DefaultBaseURL].
//
// # Endpoints
//
//   - [Client.DweetFor]: POST /dweet/for/{thing}
//   - [Client.GetLatestDweetFor]: GET /get/latest/dweet/for/{thing}
//   - [Client.GetDweetsFor]: GET /get/dweets/for/{thing}, sorted oldest first
//
// A "not found" failure on either read endpoint is reported as an empty
// list, so callers see an unknown thing and an empty thing the same way.
//
// # Retry Behavior
//
// Requests are attempted once by default. With [WithRetries] the client
// retries transport failures and these HTTP status codes:
//
//   - 408 Request Timeout
//   - 429 Too Many Requests
//   - 500 Internal Server Error
//   - 502 Bad Gateway
//   - 503 Service Unavailable
//   - 504 Gateway Timeout
//
// The delay doubles with each attempt, starting at [DefaultRetryDelay].
//
// # Error Handling
//
// Board failures are returned as [*APIError] and match the sentinels
// [ErrNotFound], [ErrBadRequest] and [ErrRateLimited] through errors.Is.
// Transport failures are [*NetworkError].
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use.
package api
