package dweeter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"
	"sync"

	"github.com/dweeter/client-go/internal/api"
	"github.com/dweeter/client-go/internal/delivery"
	"github.com/dweeter/client-go/internal/envelope"
)

// Operation names carried in Error.Op.
const (
	opSend    = "send"
	opReceive = "receive"
	opHistory = "history"
)

// Mailbox is a freshness-tracked message channel between holders of one
// shared secret.
//
// Send and Receive are safe for concurrent use. The last delivered message
// is updated with a compare-and-update on its board stamp, so concurrent
// receives can never move it backwards, and a given board record is
// delivered by at most one of them.
type Mailbox struct {
	client   *Client
	name     string
	thing    string
	encoding Encoding
	sealer   *envelope.Sealer
	channel  *envelope.Channel

	mu     sync.Mutex
	latest *Message

	subs    *subscriptionManager
	watchMu sync.Mutex
	poller  delivery.Strategy
}

func newMailbox(c *Client, name, secret string, encoding Encoding) *Mailbox {
	sealer := envelope.NewSealer(secret, encoding.codec())
	return &Mailbox{
		client:   c,
		name:     name,
		thing:    sealer.SealThing(name),
		encoding: encoding,
		sealer:   sealer,
		channel:  envelope.NewChannel(c.board, sealer),
		subs:     newSubscriptionManager(),
	}
}

// Name returns the plaintext mailbox name.
func (m *Mailbox) Name() string {
	return m.name
}

// Thing returns the encrypted identifier the mailbox uses on the board.
func (m *Mailbox) Thing() string {
	return m.thing
}

// Encoding returns the mailbox encoding.
func (m *Mailbox) Encoding() Encoding {
	return m.encoding
}

// Latest returns the last message delivered by Receive, or nil.
func (m *Mailbox) Latest() *Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest
}

// Send stamps data with the current time, serializes it to JSON and posts
// it, encrypted, as the mailbox's latest record.
//
// data must be non-nil and must not use the reserved fields remote_time or
// created_time; otherwise Send fails with ErrInvalidInput without calling
// the board. Reserved fields are rejected rather than overwritten, so a
// received Message is forwarded with Send(ctx, msg.Data), not msg.Map().
// data is not modified.
func (m *Mailbox) Send(ctx context.Context, data map[string]any) (*Dweet, error) {
	if data == nil {
		return nil, m.fail(opSend, ErrInvalidInput, errors.New("data must be a non-nil map"))
	}
	for _, field := range []string{FieldRemoteTime, FieldCreatedTime} {
		if _, ok := data[field]; ok {
			return nil, m.fail(opSend, ErrInvalidInput, fmt.Errorf("field %q is reserved", field))
		}
	}

	stamp := FormatTime(m.client.now())
	payload := maps.Clone(data)
	payload[FieldRemoteTime] = stamp

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, m.fail(opSend, ErrInvalidInput, err)
	}

	d, err := m.client.board.DweetFor(ctx, m.thing, m.sealer.Seal(map[string]string{stamp: string(body)}))
	if err != nil {
		return nil, m.fail(opSend, ErrNetwork, err)
	}

	return &Dweet{
		Thing:       m.thing,
		Created:     d.Created,
		Transaction: d.Transaction,
		RemoteTime:  stamp,
	}, nil
}

// Receive fetches the mailbox's latest record and returns it if it is newer
// than the last message this Mailbox delivered. It returns (nil, nil) when
// the board holds nothing or the record was already delivered.
//
// Failures are returned as *Error; the freshness state is left unchanged.
func (m *Mailbox) Receive(ctx context.Context) (*Message, error) {
	dweets, err := m.client.board.GetLatestDweetFor(ctx, m.thing)
	if err != nil {
		return nil, m.fail(opReceive, ErrNetwork, err)
	}
	if len(dweets) == 0 {
		m.client.logger.Debug("mailbox empty", "mailbox", m.name)
		return nil, nil
	}

	msg, err := m.open(opReceive, dweets[0])
	if err != nil {
		return nil, err
	}

	if !m.deliver(msg) {
		m.client.logger.Debug("stale message suppressed",
			"mailbox", m.name, "created", msg.CreatedTime)
		return nil, nil
	}
	return msg, nil
}

// History returns every record the board retains for the mailbox, oldest
// first. Records that cannot be opened are reported in their entry's Err.
// History does not change the freshness state.
func (m *Mailbox) History(ctx context.Context) ([]HistoryEntry, error) {
	dweets, err := m.client.board.GetDweetsFor(ctx, m.thing)
	if err != nil {
		return nil, m.fail(opHistory, ErrNetwork, err)
	}

	entries := make([]HistoryEntry, 0, len(dweets))
	for _, d := range dweets {
		msg, err := m.open(opHistory, d)
		entries = append(entries, HistoryEntry{Message: msg, Err: err})
	}
	return entries, nil
}

// SendAsync runs Send in a new goroutine. The result channel receives
// exactly one value and is then closed.
func (m *Mailbox) SendAsync(ctx context.Context, data map[string]any) <-chan SendResult {
	ch := make(chan SendResult, 1)
	go func() {
		defer close(ch)
		d, err := m.Send(ctx, data)
		ch <- SendResult{Dweet: d, Err: err}
	}()
	return ch
}

// ReceiveAsync runs Receive in a new goroutine. The result channel receives
// exactly one value and is then closed.
func (m *Mailbox) ReceiveAsync(ctx context.Context) <-chan ReceiveResult {
	ch := make(chan ReceiveResult, 1)
	go func() {
		defer close(ch)
		msg, err := m.Receive(ctx)
		ch <- ReceiveResult{Message: msg, Err: err}
	}()
	return ch
}

// open decrypts and verifies one board record.
func (m *Mailbox) open(op string, d api.Dweet) (*Message, error) {
	if len(d.Content) != 1 {
		return nil, m.fail(op, ErrIntegrity, fmt.Errorf("payload has %d entries, want 1", len(d.Content)))
	}

	record, err := m.channel.OpenRecord(m.name, d)
	if err != nil {
		return nil, m.fail(op, kindOf(err), err)
	}

	var timeString, dataJSON string
	for k, v := range record.Content {
		timeString, dataJSON = k, v
	}

	payload, err := decodePayload(dataJSON)
	if err != nil {
		return nil, m.fail(op, ErrDecode, err)
	}

	remote, present := payload[FieldRemoteTime]
	if !present {
		return nil, m.fail(op, ErrIntegrity, fmt.Errorf("%s missing", FieldRemoteTime))
	}
	remoteTime, isString := remote.(string)
	if !isString {
		return nil, m.fail(op, ErrDecode, fmt.Errorf("%s is %T, want string", FieldRemoteTime, remote))
	}
	if remoteTime != timeString {
		return nil, m.fail(op, ErrIntegrity,
			fmt.Errorf("embedded %s %q does not match %q", FieldRemoteTime, remoteTime, timeString))
	}

	delete(payload, FieldRemoteTime)
	delete(payload, FieldCreatedTime)

	return &Message{
		Data:        payload,
		RemoteTime:  remoteTime,
		CreatedTime: d.Created,
		Transaction: d.Transaction,
	}, nil
}

// decodePayload parses a JSON object, keeping numbers as json.Number.
func decodePayload(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errors.New("payload is not a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after payload")
	}
	return payload, nil
}

// deliver records msg as the latest message if it is strictly newer.
func (m *Mailbox) deliver(msg *Message) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.latest != nil && !msg.CreatedTime.After(m.latest.CreatedTime) {
		return false
	}
	m.latest = msg
	return true
}

func (m *Mailbox) fail(op string, kind, err error) error {
	e := &Error{Op: op, Kind: kind, Err: wrapError(err)}
	m.client.logger.Warn("mailbox operation failed",
		"op", op, "mailbox", m.name, "kind", kind.Error(), "error", err)
	return e
}
