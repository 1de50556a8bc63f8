package board

import (
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dweeter/client-go/internal/api"
)

// DefaultHistoryLimit matches the number of records dweet.io retains per
// thing.
const DefaultHistoryLimit = 5

// Store holds the records of every thing in memory. It is safe for
// concurrent use.
type Store struct {
	mu     sync.Mutex
	things map[string][]api.Dweet
	limit  int
	now    func() time.Time
	last   time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithHistoryLimit sets how many records are kept per thing. Values below
// one are ignored.
func WithHistoryLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithClock sets the time source for creation stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		things: make(map[string][]api.Dweet),
		limit:  DefaultHistoryLimit,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put records content under thing and returns the stored record. Creation
// stamps have millisecond precision and are strictly increasing across the
// whole store, even when the clock stalls or steps back.
func (s *Store) Put(thing string, content map[string]any) api.Dweet {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.now().UTC().Truncate(time.Millisecond)
	if !created.After(s.last) {
		created = s.last.Add(time.Millisecond)
	}
	s.last = created

	d := api.Dweet{
		Thing:       thing,
		Created:     created,
		Content:     maps.Clone(content),
		Transaction: uuid.NewString(),
	}
	if d.Content == nil {
		d.Content = map[string]any{}
	}

	history := append(s.things[thing], d)
	if len(history) > s.limit {
		history = history[len(history)-s.limit:]
	}
	s.things[thing] = history

	return d
}

// Latest returns the newest record for thing.
func (s *Store) Latest(thing string) (api.Dweet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.things[thing]
	if len(history) == 0 {
		return api.Dweet{}, false
	}
	return history[len(history)-1], true
}

// All returns the retained records for thing, newest first, as dweet.io
// reports them.
func (s *Store) All(thing string) []api.Dweet {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.things[thing]
	out := make([]api.Dweet, len(history))
	for i, d := range history {
		out[len(history)-1-i] = d
	}
	return out
}

// Things returns the number of things with at least one record.
func (s *Store) Things() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.things)
}
