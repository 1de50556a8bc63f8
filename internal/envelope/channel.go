package envelope

import (
	"context"
	"fmt"
	"time"

	"github.com/dweeter/client-go/internal/api"
)

// Board is the subset of a bulletin board client a Channel needs.
// *api.Client satisfies it.
type Board interface {
	DweetFor(ctx context.Context, thing string, content map[string]any) (*api.Dweet, error)
	GetLatestDweetFor(ctx context.Context, thing string) ([]api.Dweet, error)
	GetDweetsFor(ctx context.Context, thing string) ([]api.Dweet, error)
}

var _ Board = (*api.Client)(nil)

// Record is a board record with its name and content in plaintext.
type Record struct {
	Thing       string
	Created     time.Time
	Content     map[string]string
	Transaction string
}

// Channel reads and writes encrypted records on a board.
type Channel struct {
	board  Board
	sealer *Sealer
}

// NewChannel returns a Channel over board using sealer.
func NewChannel(board Board, sealer *Sealer) *Channel {
	return &Channel{board: board, sealer: sealer}
}

// Sealer returns the channel's sealer.
func (c *Channel) Sealer() *Sealer {
	return c.sealer
}

// DweetFor seals thing and content and posts them. The returned record
// carries the plaintext the caller supplied and the board's stamp.
func (c *Channel) DweetFor(ctx context.Context, thing string, content map[string]string) (*Record, error) {
	d, err := c.board.DweetFor(ctx, c.sealer.SealThing(thing), c.sealer.Seal(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBoard, err)
	}

	plain := make(map[string]string, len(content))
	for k, v := range content {
		plain[k] = v
	}
	return &Record{
		Thing:       thing,
		Created:     d.Created,
		Content:     plain,
		Transaction: d.Transaction,
	}, nil
}

// GetLatestDweetFor returns the newest record for thing, decrypted, as a list
// of at most one element.
func (c *Channel) GetLatestDweetFor(ctx context.Context, thing string) ([]Record, error) {
	dweets, err := c.board.GetLatestDweetFor(ctx, c.sealer.SealThing(thing))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBoard, err)
	}
	return c.openAll(thing, dweets)
}

// GetDweetsFor returns every retained record for thing, decrypted, oldest
// first.
func (c *Channel) GetDweetsFor(ctx context.Context, thing string) ([]Record, error) {
	dweets, err := c.board.GetDweetsFor(ctx, c.sealer.SealThing(thing))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBoard, err)
	}
	return c.openAll(thing, dweets)
}

// OpenRecord decrypts one raw board record published under thing.
func (c *Channel) OpenRecord(thing string, d api.Dweet) (*Record, error) {
	content, err := c.sealer.Open(d.Content)
	if err != nil {
		return nil, err
	}
	return &Record{
		Thing:       thing,
		Created:     d.Created,
		Content:     content,
		Transaction: d.Transaction,
	}, nil
}

func (c *Channel) openAll(thing string, dweets []api.Dweet) ([]Record, error) {
	records := make([]Record, 0, len(dweets))
	for i, d := range dweets {
		r, err := c.OpenRecord(thing, d)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, *r)
	}
	return records, nil
}
