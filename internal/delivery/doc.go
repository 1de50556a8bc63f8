// Package delivery provides the polling strategy behind mailbox watching.
//
// A dweet board offers no push channel, so new messages are found by
// polling the latest record of a thing. [PollingStrategy] runs a
// caller-supplied [PollFunc] with adaptive backoff:
//
//   - The interval starts at 2s and resets whenever a poll delivers something.
//   - Each poll that delivers nothing multiplies the interval by 1.5, up to 30s.
//   - Random jitter of up to 30% keeps many watchers from polling in lockstep.
//
// Usage:
//
//	strategy := delivery.NewPollingStrategy(delivery.Config{})
//	strategy.Start(ctx, func(ctx context.Context) (bool, error) {
//	    msg, err := mailbox.Receive(ctx)
//	    return msg != nil, err
//	})
//	defer strategy.Stop()
//
// # Thread Safety
//
// PollingStrategy is safe for concurrent use. Start and Stop may be called
// from different goroutines.
package delivery
