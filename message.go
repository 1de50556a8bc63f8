package dweeter

import (
	"maps"
	"time"
)

// Reserved payload fields.
const (
	// FieldRemoteTime holds the sender's stamp inside every payload.
	FieldRemoteTime = "remote_time"
	// FieldCreatedTime holds the board's stamp on a received message.
	FieldCreatedTime = "created_time"
)

// TimeFormat is the layout of message stamps, for example
// 2024-05-01T10:00:00.000Z. Sender stamps are truncated to the second, so
// their fraction is always .000.
const TimeFormat = "2006-01-02T15:04:05.000Z"

// FormatTime renders t in TimeFormat.
func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimeFormat)
}

// Message is a delivered mailbox message.
type Message struct {
	// Data is the application payload with the reserved fields removed.
	// JSON numbers are kept as json.Number.
	Data map[string]any

	// RemoteTime is the sender's stamp, in TimeFormat.
	RemoteTime string

	// CreatedTime is the board's stamp. Freshness is decided on it.
	CreatedTime time.Time

	// Transaction is the board's record identifier, if it supplies one.
	Transaction string
}

// Map returns the payload together with the reserved fields, the shape the
// sender's data takes after a round trip.
func (m *Message) Map() map[string]any {
	out := maps.Clone(m.Data)
	if out == nil {
		out = make(map[string]any, 2)
	}
	out[FieldRemoteTime] = m.RemoteTime
	out[FieldCreatedTime] = m.CreatedTime.UTC().Format(TimeFormat)
	return out
}

// Dweet is the board's acknowledgement of a sent message.
type Dweet struct {
	// Thing is the encrypted board identifier the message was posted under.
	Thing string

	// Created is the board's stamp for the record.
	Created time.Time

	// Transaction is the board's record identifier, if it supplies one.
	Transaction string

	// RemoteTime is the stamp embedded in the payload.
	RemoteTime string
}

// Record is a decrypted board record read or written through a Channel.
type Record struct {
	Thing       string
	Created     time.Time
	Content     map[string]string
	Transaction string
}

// HistoryEntry is one record returned by Mailbox.History: either a
// message or the error that prevented opening it.
type HistoryEntry struct {
	Message *Message
	Err     error
}

// SendResult is delivered by Mailbox.SendAsync.
type SendResult struct {
	Dweet *Dweet
	Err   error
}

// ReceiveResult is delivered by Mailbox.ReceiveAsync. Both fields are nil
// when there was nothing fresh to deliver.
type ReceiveResult struct {
	Message *Message
	Err     error
}

// RecordResult is delivered by Channel.DweetForAsync.
type RecordResult struct {
	Record *Record
	Err    error
}

// RecordsResult is delivered by the Channel's asynchronous reads.
type RecordsResult struct {
	Records []Record
	Err     error
}
