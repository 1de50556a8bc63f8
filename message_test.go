package dweeter

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dweeter/client-go/internal/board"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), "2024-05-01T10:00:00.000Z"},
		{time.Date(2024, 5, 1, 10, 0, 0, 999999999, time.UTC), "2024-05-01T10:00:00.000Z"},
		{time.Date(2024, 12, 31, 23, 30, 5, 0, time.FixedZone("", -3600)), "2025-01-01T00:30:05.000Z"},
	}

	for _, tt := range tests {
		if got := FormatTime(tt.in); got != tt.want {
			t.Errorf("FormatTime(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatTime_Parses(t *testing.T) {
	s := FormatTime(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	parsed, err := time.Parse(TimeFormat, s)
	if err != nil {
		t.Fatalf("time.Parse() error = %v", err)
	}
	if FormatTime(parsed) != s {
		t.Errorf("re-formatted %s, want %s", FormatTime(parsed), s)
	}
}

func TestMessage_Map(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 1, 250e6, time.UTC)
	msg := &Message{
		Data:        map[string]any{"k": "v"},
		RemoteTime:  "2024-05-01T10:00:00.000Z",
		CreatedTime: created,
	}

	m := msg.Map()
	if m["k"] != "v" {
		t.Errorf("k = %v", m["k"])
	}
	if m[FieldRemoteTime] != "2024-05-01T10:00:00.000Z" {
		t.Errorf("remote_time = %v", m[FieldRemoteTime])
	}
	if m[FieldCreatedTime] != "2024-05-01T10:00:01.250Z" {
		t.Errorf("created_time = %v", m[FieldCreatedTime])
	}
	if _, ok := msg.Data[FieldRemoteTime]; ok {
		t.Error("Map() modified Data")
	}
}

func TestMessage_MapNilData(t *testing.T) {
	m := (&Message{RemoteTime: "x"}).Map()
	if len(m) != 2 {
		t.Errorf("Map() = %v, want only reserved fields", m)
	}
}

func Example() {
	server := httptest.NewServer(board.NewServer(board.NewStore(), nil))
	defer server.Close()

	client, err := New(WithBaseURL(server.URL))
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	sender := client.Mailbox("MAILBOX_NAME", "KEY_TO_MAILBOX")
	receiver := client.Mailbox("MAILBOX_NAME", "KEY_TO_MAILBOX")

	if _, err := sender.Send(ctx, map[string]any{"DATA_1": "VALUE_1"}); err != nil {
		panic(err)
	}

	msg, _ := receiver.Receive(ctx)
	fmt.Println(receiver.Thing())
	fmt.Println(msg.Data["DATA_1"])

	again, _ := receiver.Receive(ctx)
	fmt.Println(again == nil)

	// Output:
	// 42e6ae04e842cadca8a814fea06bcf6d
	// VALUE_1
	// true
}
