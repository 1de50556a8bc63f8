package dweeter

import (
	"log/slog"
	"os"
	"time"

	"github.com/dweeter/client-go/internal/api"
	"github.com/dweeter/client-go/internal/delivery"
	"github.com/dweeter/client-go/internal/envelope"
)

// Client binds mailboxes and channels to one bulletin board.
// It holds no per-mailbox state and is safe for concurrent use.
type Client struct {
	board   envelope.Board
	baseURL string
	logger  *slog.Logger
	now     func() time.Time
	polling delivery.Config
}

// buildAPIClient creates and configures a board client from the given config.
func buildAPIClient(cfg *clientConfig) (*api.Client, error) {
	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	if cfg.retries > 0 {
		apiOpts = append(apiOpts, api.WithRetries(cfg.retries))
	}
	if len(cfg.retryOn) > 0 {
		apiOpts = append(apiOpts, api.WithRetryOn(cfg.retryOn))
	}
	if cfg.retryDelay > 0 {
		apiOpts = append(apiOpts, api.WithRetryDelay(cfg.retryDelay))
	}
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	}
	if cfg.debug {
		apiOpts = append(apiOpts, api.WithLogger(cfg.logger))
	}

	return api.New(apiOpts...)
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		baseURL: defaultBaseURL,
		clock:   time.Now,
	}
}

// New creates a client for the board at the configured base URL.
// No request is made until a mailbox or channel is used.
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	finishConfig(cfg)

	apiClient, err := buildAPIClient(cfg)
	if err != nil {
		return nil, err
	}

	c := newClient(cfg, apiClient)
	c.baseURL = apiClient.BaseURL()
	return c, nil
}

// finishConfig fills in the diagnostic logger and clock.
func finishConfig(cfg *clientConfig) {
	if cfg.clock == nil {
		cfg.clock = time.Now
	}
	switch {
	case !cfg.debug:
		cfg.logger = slog.New(slog.DiscardHandler)
	case cfg.logger == nil:
		cfg.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func newClient(cfg *clientConfig, board envelope.Board) *Client {
	return &Client{
		board:  board,
		logger: cfg.logger,
		now:    cfg.clock,
		polling: delivery.Config{
			PollingInitialInterval:   cfg.pollingInitialInterval,
			PollingMaxBackoff:        cfg.pollingMaxBackoff,
			PollingBackoffMultiplier: cfg.pollingBackoffMultiplier,
			PollingJitterFactor:      cfg.pollingJitterFactor,
			Logger:                   cfg.logger,
		},
	}
}

// BaseURL returns the board base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Mailbox returns a mailbox named name, sealed under secret. Two parties
// that construct a mailbox with the same name, secret and encoding share it.
// Each Mailbox value tracks its own freshness state.
func (c *Client) Mailbox(name, secret string, opts ...MailboxOption) *Mailbox {
	cfg := &mailboxConfig{encoding: EncodingHex}
	for _, opt := range opts {
		opt(cfg)
	}
	return newMailbox(c, name, secret, cfg.encoding)
}

// Channel returns a raw encrypted channel sealed under secret. Unlike a
// Mailbox it posts and reads arbitrary string maps under any thing name and
// keeps no freshness state.
func (c *Client) Channel(secret string, encoding Encoding) *Channel {
	sealer := envelope.NewSealer(secret, encoding.codec())
	return &Channel{
		ch:     envelope.NewChannel(c.board, sealer),
		logger: c.logger,
	}
}
