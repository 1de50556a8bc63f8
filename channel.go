package dweeter

import (
	"context"
	"log/slog"

	"github.com/dweeter/client-go/internal/envelope"
)

// Operation names for Channel errors.
const (
	opDweetFor          = "dweet_for"
	opGetLatestDweetFor = "get_latest_dweet_for"
	opGetDweetsFor      = "get_dweets_for"
)

// Channel posts and reads encrypted string maps on the board. Thing names
// are plaintext on the caller's side and sealed on the board's.
type Channel struct {
	ch     *envelope.Channel
	logger *slog.Logger
}

// Thing returns the board identifier that name seals to.
func (c *Channel) Thing(name string) string {
	return c.ch.Sealer().SealThing(name)
}

// DweetFor encrypts content and posts it under thing.
func (c *Channel) DweetFor(ctx context.Context, thing string, content map[string]string) (*Record, error) {
	r, err := c.ch.DweetFor(ctx, thing, content)
	if err != nil {
		return nil, c.fail(opDweetFor, ErrNetwork, err)
	}
	return toRecord(r), nil
}

// GetLatestDweetFor returns the newest record under thing, decrypted, as a
// list of at most one element.
func (c *Channel) GetLatestDweetFor(ctx context.Context, thing string) ([]Record, error) {
	records, err := c.ch.GetLatestDweetFor(ctx, thing)
	if err != nil {
		return nil, c.fail(opGetLatestDweetFor, kindOf(err), err)
	}
	return toRecords(records), nil
}

// GetDweetsFor returns every retained record under thing, decrypted, oldest
// first.
func (c *Channel) GetDweetsFor(ctx context.Context, thing string) ([]Record, error) {
	records, err := c.ch.GetDweetsFor(ctx, thing)
	if err != nil {
		return nil, c.fail(opGetDweetsFor, kindOf(err), err)
	}
	return toRecords(records), nil
}

// DweetForAsync runs DweetFor in a new goroutine. The result channel
// receives exactly one value and is then closed.
func (c *Channel) DweetForAsync(ctx context.Context, thing string, content map[string]string) <-chan RecordResult {
	ch := make(chan RecordResult, 1)
	go func() {
		defer close(ch)
		r, err := c.DweetFor(ctx, thing, content)
		ch <- RecordResult{Record: r, Err: err}
	}()
	return ch
}

// GetLatestDweetForAsync runs GetLatestDweetFor in a new goroutine.
func (c *Channel) GetLatestDweetForAsync(ctx context.Context, thing string) <-chan RecordsResult {
	return c.recordsAsync(func() ([]Record, error) { return c.GetLatestDweetFor(ctx, thing) })
}

// GetDweetsForAsync runs GetDweetsFor in a new goroutine.
func (c *Channel) GetDweetsForAsync(ctx context.Context, thing string) <-chan RecordsResult {
	return c.recordsAsync(func() ([]Record, error) { return c.GetDweetsFor(ctx, thing) })
}

func (c *Channel) recordsAsync(get func() ([]Record, error)) <-chan RecordsResult {
	ch := make(chan RecordsResult, 1)
	go func() {
		defer close(ch)
		records, err := get()
		ch <- RecordsResult{Records: records, Err: err}
	}()
	return ch
}

func (c *Channel) fail(op string, kind, err error) error {
	c.logger.Warn("channel operation failed", "op", op, "kind", kind.Error(), "error", err)
	return &Error{Op: op, Kind: kind, Err: wrapError(err)}
}

func toRecord(r *envelope.Record) *Record {
	return &Record{
		Thing:       r.Thing,
		Created:     r.Created,
		Content:     r.Content,
		Transaction: r.Transaction,
	}
}

func toRecords(rs []envelope.Record) []Record {
	out := make([]Record, len(rs))
	for i := range rs {
		out[i] = *toRecord(&rs[i])
	}
	return out
}
