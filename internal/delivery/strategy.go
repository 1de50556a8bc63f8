package delivery

import (
	"context"
	"log/slog"
	"time"
)

// PollFunc performs one poll. It reports whether the poll delivered
// something new; an error counts as "nothing new" for backoff purposes.
type PollFunc func(ctx context.Context) (changed bool, err error)

// Strategy defines the interface for message delivery mechanisms.
//
// The typical lifecycle is:
//  1. Create a strategy with NewPollingStrategy(cfg)
//  2. Call Start(ctx, poll) to begin polling in the background
//  3. Call Stop() when done to release resources
type Strategy interface {
	// Start begins calling poll until ctx is done or Stop is called.
	// Start returns immediately.
	Start(ctx context.Context, poll PollFunc) error

	// Stop shuts down the strategy. After Stop returns, poll is not called
	// again. Stop is idempotent.
	Stop() error

	// Name returns the strategy name for logging and debugging.
	Name() string
}

// Config holds configuration for delivery strategies.
type Config struct {
	// PollingInitialInterval is the starting interval between polls.
	// If zero, defaults to DefaultPollingInitialInterval.
	PollingInitialInterval time.Duration

	// PollingMaxBackoff is the maximum interval between polls.
	// If zero, defaults to DefaultPollingMaxBackoff.
	PollingMaxBackoff time.Duration

	// PollingBackoffMultiplier is the factor by which the interval
	// increases after each poll with no changes.
	// If zero, defaults to DefaultPollingBackoffMultiplier.
	PollingBackoffMultiplier float64

	// PollingJitterFactor is the maximum random jitter added to
	// poll intervals (as a fraction of the interval).
	// If zero, defaults to DefaultPollingJitterFactor.
	PollingJitterFactor float64

	// Logger receives poll failures. If nil, they are discarded.
	Logger *slog.Logger
}

// Default polling configuration values.
const (
	DefaultPollingInitialInterval   = 2 * time.Second
	DefaultPollingMaxBackoff        = 30 * time.Second
	DefaultPollingBackoffMultiplier = 1.5
	DefaultPollingJitterFactor      = 0.3
)

func (c Config) withDefaults() Config {
	if c.PollingInitialInterval <= 0 {
		c.PollingInitialInterval = DefaultPollingInitialInterval
	}
	if c.PollingMaxBackoff <= 0 {
		c.PollingMaxBackoff = DefaultPollingMaxBackoff
	}
	if c.PollingMaxBackoff < c.PollingInitialInterval {
		c.PollingMaxBackoff = c.PollingInitialInterval
	}
	if c.PollingBackoffMultiplier <= 0 {
		c.PollingBackoffMultiplier = DefaultPollingBackoffMultiplier
	}
	if c.PollingJitterFactor <= 0 {
		c.PollingJitterFactor = DefaultPollingJitterFactor
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
