package dweeter

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dweeter/client-go/internal/api"
	"github.com/dweeter/client-go/internal/crypto"
)

// Encoding selects how ciphertext is rendered on the board.
type Encoding string

const (
	// EncodingHex renders content as lower-case hex. This is the default.
	EncodingHex Encoding = "hex"
	// EncodingBase64 renders content as standard base64 and swaps the key
	// and IV halves of the derived key material, so a base64 mailbox lives
	// in a namespace disjoint from the hex mailbox of the same secret.
	EncodingBase64 Encoding = "base64"
)

// ParseEncoding converts a configuration string to an Encoding. The empty
// string selects EncodingHex.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case "", EncodingHex:
		return EncodingHex, nil
	case EncodingBase64:
		return EncodingBase64, nil
	default:
		return "", fmt.Errorf("unknown encoding %q (want hex or base64)", s)
	}
}

func (e Encoding) codec() crypto.Codec {
	if e == EncodingBase64 {
		return crypto.CodecBase64
	}
	return crypto.CodecHex
}

const (
	defaultBaseURL     = api.DefaultBaseURL
	defaultWaitTimeout = 60 * time.Second
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	retries    int
	retryOn    []int
	retryDelay time.Duration
	debug      bool
	logger     *slog.Logger
	clock      func() time.Time

	// Polling configuration for Watch and WaitForMessage
	pollingInitialInterval   time.Duration
	pollingMaxBackoff        time.Duration
	pollingBackoffMultiplier float64
	pollingJitterFactor      float64
}

// mailboxConfig holds configuration for a mailbox.
type mailboxConfig struct {
	encoding Encoding
}

// waitConfig holds configuration for waiting on messages.
type waitConfig struct {
	predicate func(*Message) bool
	timeout   time.Duration
}

// Option configures the client.
type Option func(*clientConfig)

// MailboxOption configures a mailbox.
type MailboxOption func(*mailboxConfig)

// WaitOption configures message waiting.
type WaitOption func(*waitConfig)

// WithBaseURL sets the bulletin board base URL.
// Default: https://dweet.io
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of retries for board calls. Board calls are
// not retried unless this is set.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [408, 429, 500, 502, 503, 504]
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithRetryDelay sets the base delay between retries.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *clientConfig) {
		c.retryDelay = delay
	}
}

// WithDebug enables diagnostics. Every Send and Receive failure is logged
// with its kind and cause; return values are unaffected.
func WithDebug(enabled bool) Option {
	return func(c *clientConfig) {
		c.debug = enabled
	}
}

// WithLogger sets the destination for diagnostics enabled by WithDebug.
// Default: a text handler on stderr at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithClock sets the time source used to stamp outgoing messages.
func WithClock(now func() time.Time) Option {
	return func(c *clientConfig) {
		c.clock = now
	}
}

// WithPollingInitialInterval sets the initial polling interval used by
// Watch and WaitForMessage.
// Default: 2 seconds
func WithPollingInitialInterval(interval time.Duration) Option {
	return func(c *clientConfig) {
		c.pollingInitialInterval = interval
	}
}

// WithPollingMaxBackoff sets the maximum polling interval. When no new
// messages arrive, the interval grows up to this maximum.
// Default: 30 seconds
func WithPollingMaxBackoff(maxBackoff time.Duration) Option {
	return func(c *clientConfig) {
		c.pollingMaxBackoff = maxBackoff
	}
}

// WithPollingBackoffMultiplier sets the factor applied to the interval after
// each poll that delivered nothing.
// Default: 1.5
func WithPollingBackoffMultiplier(multiplier float64) Option {
	return func(c *clientConfig) {
		c.pollingBackoffMultiplier = multiplier
	}
}

// WithPollingJitterFactor sets the maximum random jitter added to polling
// intervals, as a fraction of the interval.
// Default: 0.3
func WithPollingJitterFactor(factor float64) Option {
	return func(c *clientConfig) {
		c.pollingJitterFactor = factor
	}
}

// WithEncoding sets the mailbox encoding.
func WithEncoding(encoding Encoding) MailboxOption {
	return func(c *mailboxConfig) {
		c.encoding = encoding
	}
}

// WithPredicate only accepts messages for which fn returns true.
func WithPredicate(fn func(*Message) bool) WaitOption {
	return func(c *waitConfig) {
		c.predicate = fn
	}
}

// WithWaitTimeout sets how long WaitForMessage waits.
// Default: 60 seconds
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}

// Matches reports whether msg satisfies the wait criteria.
func (c *waitConfig) Matches(msg *Message) bool {
	if msg == nil {
		return false
	}
	if c.predicate != nil && !c.predicate(msg) {
		return false
	}
	return true
}
