package delivery

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrAlreadyStarted is returned by Start on a running strategy.
var ErrAlreadyStarted = errors.New("strategy already started")

// PollingStrategy calls a PollFunc with adaptive backoff: the interval
// resets after a poll that delivered something and grows towards the
// maximum while nothing changes.
type PollingStrategy struct {
	cfg     Config
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewPollingStrategy creates a new polling strategy.
func NewPollingStrategy(cfg Config) *PollingStrategy {
	return &PollingStrategy{cfg: cfg.withDefaults()}
}

// Name returns the strategy name.
func (p *PollingStrategy) Name() string {
	return "polling"
}

// Start begins polling in a background goroutine. The first poll runs
// immediately.
func (p *PollingStrategy) Start(ctx context.Context, poll PollFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrAlreadyStarted
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		p.Run(ctx, poll)
	}(p.done)
	return nil
}

// Stop cancels polling and waits for an in-flight poll to return.
func (p *PollingStrategy) Stop() error {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.started = false
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	return nil
}

// Run polls in the calling goroutine until ctx is done and returns ctx.Err().
func (p *PollingStrategy) Run(ctx context.Context, poll PollFunc) error {
	interval := p.cfg.PollingInitialInterval

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		changed, err := poll(ctx)
		if err != nil && ctx.Err() == nil {
			p.cfg.Logger.Debug("poll failed", "error", err, "interval", interval)
		}
		interval = p.nextInterval(interval, changed && err == nil)

		timer := time.NewTimer(p.waitDuration(interval))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (p *PollingStrategy) nextInterval(current time.Duration, changed bool) time.Duration {
	if changed {
		return p.cfg.PollingInitialInterval
	}
	next := time.Duration(float64(current) * p.cfg.PollingBackoffMultiplier)
	if next > p.cfg.PollingMaxBackoff {
		next = p.cfg.PollingMaxBackoff
	}
	return next
}

func (p *PollingStrategy) waitDuration(interval time.Duration) time.Duration {
	jitter := time.Duration(rand.Float64() * p.cfg.PollingJitterFactor * float64(interval))
	return interval + jitter
}
