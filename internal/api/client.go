package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public dweet.io service.
	DefaultBaseURL = "https://dweet.io"
	// DefaultTimeout is the HTTP client timeout used when none is configured.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRetries is zero: board calls are attempted once unless the
	// caller opts in to retries.
	DefaultMaxRetries = 0
	// DefaultRetryDelay is the base delay between retry attempts.
	DefaultRetryDelay = time.Second
)

// DefaultRetryOn lists the HTTP status codes retried when retries are enabled.
var DefaultRetryOn = []int{408, 429, 500, 502, 503, 504}

// Client talks to a dweet-compatible bulletin board over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      *RetryConfig
	logger     *slog.Logger
}

// Config holds the struct form of the client configuration.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	RetryOn    []int
	Logger     *slog.Logger
}

// NewClient creates a client from a Config. BaseURL is required.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	retry := DefaultRetryConfig()
	retry.MaxRetries = cfg.MaxRetries
	if cfg.RetryDelay > 0 {
		retry.BaseDelay = cfg.RetryDelay
	}
	if cfg.RetryOn != nil {
		retry.RetryableOn = statusSet(cfg.RetryOn)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		retry:      retry,
		logger:     cfg.Logger,
	}, nil
}

// Option configures the functional-options form of the client.
type Option func(*Config)

// WithBaseURL sets the board base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTimeout sets the HTTP client timeout. Ignored with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithRetries sets the number of retries for retryable statuses.
func WithRetries(retries int) Option {
	return func(c *Config) {
		c.MaxRetries = retries
	}
}

// WithRetryDelay sets the base delay between retries.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Config) {
		c.RetryDelay = delay
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
func WithRetryOn(statusCodes []int) Option {
	return func(c *Config) {
		c.RetryOn = statusCodes
	}
}

// WithLogger sets the logger that receives retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// New creates a client using functional options. The base URL defaults to
// [DefaultBaseURL].
func New(opts ...Option) (*Client, error) {
	cfg := Config{BaseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewClient(cfg)
}

// BaseURL returns the board base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

func (c *Client) isRetryable(statusCode int) bool {
	return c.retry.RetryableOn(statusCode)
}

// Do performs an HTTP request against the board and decodes the "with"
// member of a succeeded response into result. A "failed" response, whatever
// its HTTP status, is returned as an *APIError.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	url := c.baseURL + path
	for attempt := 0; ; attempt++ {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if attempt < c.retry.MaxRetries {
				if err := c.retry.Wait(ctx, attempt); err != nil {
					return err
				}
				continue
			}
			return &NetworkError{Err: err, URL: url, Attempt: attempt + 1}
		}

		if resp.StatusCode >= 400 && c.retry.ShouldRetry(attempt, resp.StatusCode) {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if c.logger != nil {
				c.logger.Debug("retrying board request",
					"method", method, "path", path, "status", resp.StatusCode, "attempt", attempt+1)
			}
			if err := c.retry.Wait(ctx, attempt); err != nil {
				return err
			}
			continue
		}

		err = decodeResponse(resp, result)
		resp.Body.Close()
		return err
	}
}

// response is the envelope wrapped around every dweet API reply.
type response struct {
	This    string          `json:"this"`
	By      string          `json:"by,omitempty"`
	The     string          `json:"the,omitempty"`
	With    json.RawMessage `json:"with,omitempty"`
	Because string          `json:"because,omitempty"`
}

func decodeResponse(resp *http.Response, result any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err, URL: resp.Request.URL.String()}
	}

	var env response
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		}
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if env.This != "succeeded" || resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: failureCode(resp.StatusCode, env.With),
			Message:    env.Because,
		}
	}

	if result == nil || len(env.With) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(env.With))
	dec.UseNumber()
	if err := dec.Decode(result); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// failureCode prefers the numeric code carried in a failed envelope's "with"
// member, falling back to the HTTP status.
func failureCode(status int, with json.RawMessage) int {
	var code int
	if len(with) > 0 && json.Unmarshal(with, &code) == nil && code > 0 {
		return code
	}
	if status >= 400 {
		return status
	}
	return 0
}

func statusSet(codes []int) func(int) bool {
	set := make(map[int]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return func(statusCode int) bool {
		_, ok := set[statusCode]
		return ok
	}
}

// IsNotFound reports whether err is a board "not found" failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
