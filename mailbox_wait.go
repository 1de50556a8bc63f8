package dweeter

import (
	"context"
	"errors"

	"github.com/dweeter/client-go/internal/delivery"
)

// Watch returns a channel that receives fresh messages as they arrive.
// While at least one Watch is active the mailbox polls the board in the
// background with adaptive backoff; polling stops when the last watcher's
// context is done. The channel is not closed; select on ctx.Done() to
// detect cancellation.
//
// Watched messages go through Receive, so they update Latest and are not
// returned again by a later Receive.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
//	defer cancel()
//
//	ch := mailbox.Watch(ctx)
//	for {
//	    select {
//	    case <-ctx.Done():
//	        return
//	    case msg := <-ch:
//	        fmt.Println(msg.Data)
//	    }
//	}
func (m *Mailbox) Watch(ctx context.Context) <-chan *Message {
	ch := make(chan *Message, 16)

	unsubscribe := m.subs.subscribe(func(msg *Message) {
		select {
		case ch <- msg:
		default:
			// Buffer full, drop
		}
	})
	m.startPolling()

	go func() {
		<-ctx.Done()
		unsubscribe()
		m.stopPollingIfIdle()
	}()

	return ch
}

// WatchFunc calls fn for each fresh message until ctx is done.
func (m *Mailbox) WatchFunc(ctx context.Context, fn func(*Message)) {
	msgs := m.Watch(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-msgs:
			if msg != nil {
				fn(msg)
			}
		}
	}
}

// WaitForMessage waits for a fresh message matching the given criteria.
// The board is checked immediately and then polled. If the wait's own
// timeout expires a *TimeoutError is returned; if ctx ends first, its
// error is returned.
func (m *Mailbox) WaitForMessage(ctx context.Context, opts ...WaitOption) (*Message, error) {
	cfg := &waitConfig{
		timeout: defaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	waitCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	// Subscribe before the first poll so nothing delivered in between is lost.
	msgs := m.Watch(waitCtx)
	if _, err := m.poll(waitCtx); err != nil {
		m.client.logger.Debug("initial poll failed", "mailbox", m.name, "error", err)
	}

	for {
		select {
		case <-waitCtx.Done():
			if ctx.Err() == nil && errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
				return nil, &TimeoutError{Operation: "WaitForMessage", Timeout: cfg.timeout}
			}
			return nil, waitCtx.Err()
		case msg := <-msgs:
			if cfg.Matches(msg) {
				return msg, nil
			}
		}
	}
}

// poll runs one Receive and fans a fresh message out to watchers.
func (m *Mailbox) poll(ctx context.Context) (bool, error) {
	msg, err := m.Receive(ctx)
	if err != nil || msg == nil {
		return false, err
	}
	m.subs.notify(msg)
	return true, nil
}

func (m *Mailbox) startPolling() {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if m.poller != nil {
		return
	}
	p := delivery.NewPollingStrategy(m.client.polling)
	// Polling outlives any single watcher's context; stopPollingIfIdle ends it.
	if err := p.Start(context.Background(), m.poll); err != nil {
		return //coverage:ignore
	}
	m.poller = p
}

func (m *Mailbox) stopPollingIfIdle() {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if m.poller == nil || m.subs.count() > 0 {
		return
	}
	m.poller.Stop()
	m.poller = nil
}
