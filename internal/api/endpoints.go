package api

import (
	"context"
	"fmt"
	"net/url"
	"slices"
)

// DweetFor posts content under thing and returns the record the board stored.
func (c *Client) DweetFor(ctx context.Context, thing string, content map[string]any) (*Dweet, error) {
	if thing == "" {
		return nil, fmt.Errorf("%w: empty thing name", ErrBadRequest)
	}
	if content == nil {
		content = map[string]any{}
	}

	var result Dweet
	if err := c.Do(ctx, "POST", "/dweet/for/"+url.PathEscape(thing), content, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLatestDweetFor returns the most recent record for thing as a list of at
// most one element. A thing the board has never seen yields an empty list.
func (c *Client) GetLatestDweetFor(ctx context.Context, thing string) ([]Dweet, error) {
	return c.getDweets(ctx, "/get/latest/dweet/for/", thing)
}

// GetDweetsFor returns every record the board retains for thing, oldest
// first.
func (c *Client) GetDweetsFor(ctx context.Context, thing string) ([]Dweet, error) {
	dweets, err := c.getDweets(ctx, "/get/dweets/for/", thing)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(dweets, func(a, b Dweet) int {
		return a.Created.Compare(b.Created)
	})
	return dweets, nil
}

func (c *Client) getDweets(ctx context.Context, prefix, thing string) ([]Dweet, error) {
	if thing == "" {
		return nil, fmt.Errorf("%w: empty thing name", ErrBadRequest)
	}

	var result []Dweet
	if err := c.Do(ctx, "GET", prefix+url.PathEscape(thing), nil, &result); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}
