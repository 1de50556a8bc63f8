// testhelper exposes the mailbox protocol as JSON commands so other
// implementations can check wire compatibility against this one.
//
// Every command reads one JSON request from stdin and writes one JSON
// response to stdout:
//
//	thing    {"secret","encoding","name"}            -> {"thing"}
//	seal     {"secret","encoding","content"}         -> {"content"}
//	open     {"secret","encoding","content"}         -> {"content"}
//	send     {"secret","encoding","name","data"}     -> {"thing","remote_time","created"}
//	receive  {"secret","encoding","name"}            -> {"message"}
//
// send and receive talk to the board at DWEETER_URL (default dweet.io).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	dweeter "github.com/dweeter/client-go"
	"github.com/dweeter/client-go/internal/crypto"
	"github.com/dweeter/client-go/internal/envelope"
)

// Config holds the helper's I/O streams.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config on the process streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Request is the JSON input of every command.
type Request struct {
	Secret   string         `json:"secret"`
	Encoding string         `json:"encoding"`
	Name     string         `json:"name,omitempty"`
	Content  map[string]any `json:"content,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// SendOutput is the response of the send command.
type SendOutput struct {
	Thing      string `json:"thing"`
	RemoteTime string `json:"remote_time"`
	Created    string `json:"created"`
}

// clientFactory is swapped out in tests.
var clientFactory = func() (*dweeter.Client, error) {
	opts := []dweeter.Option{dweeter.WithTimeout(30 * time.Second)}
	if url := os.Getenv("DWEETER_URL"); url != "" {
		opts = append(opts, dweeter.WithBaseURL(url))
	}
	return dweeter.New(opts...)
}

var exitFunc = os.Exit

func run(args []string, cfg *Config) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: testhelper <thing|seal|open|send|receive>")
	}

	req, err := readRequest(cfg.Stdin)
	if err != nil {
		return err
	}
	encoding, err := dweeter.ParseEncoding(req.Encoding)
	if err != nil {
		return err
	}

	switch command(args) {
	case "thing":
		sealer := envelope.NewSealer(req.Secret, codecOf(encoding))
		return writeJSON(cfg.Stdout, map[string]string{"thing": sealer.SealThing(req.Name)})
	case "seal":
		return runSeal(req, encoding, cfg)
	case "open":
		return runOpen(req, encoding, cfg)
	case "send", "receive":
		client, err := clientFactory()
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		box := client.Mailbox(req.Name, req.Secret, dweeter.WithEncoding(encoding))
		if command(args) == "send" {
			return runSend(ctx, box, req, cfg)
		}
		return runReceive(ctx, box, cfg)
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

// command returns the command named in args, or "" if there is none.
func command(args []string) string {
	if len(args) < 2 {
		return ""
	}
	return args[1]
}

func readRequest(r io.Reader) (*Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	return &req, nil
}

func runSeal(req *Request, encoding dweeter.Encoding, cfg *Config) error {
	plain := make(map[string]string, len(req.Content))
	for k, v := range req.Content {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("seal: value of %q is not a string", k)
		}
		plain[k] = s
	}
	sealer := envelope.NewSealer(req.Secret, codecOf(encoding))
	return writeJSON(cfg.Stdout, map[string]any{"content": sealer.Seal(plain)})
}

func runOpen(req *Request, encoding dweeter.Encoding, cfg *Config) error {
	sealer := envelope.NewSealer(req.Secret, codecOf(encoding))
	plain, err := sealer.Open(req.Content)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	return writeJSON(cfg.Stdout, map[string]any{"content": plain})
}

func runSend(ctx context.Context, box *dweeter.Mailbox, req *Request, cfg *Config) error {
	d, err := box.Send(ctx, req.Data)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return writeJSON(cfg.Stdout, SendOutput{
		Thing:      d.Thing,
		RemoteTime: d.RemoteTime,
		Created:    d.Created.UTC().Format(dweeter.TimeFormat),
	})
}

func runReceive(ctx context.Context, box *dweeter.Mailbox, cfg *Config) error {
	msg, err := box.Receive(ctx)
	if err != nil {
		return fmt.Errorf("receive: %w", err)
	}
	out := map[string]any{"message": nil}
	if msg != nil {
		out["message"] = msg.Map()
	}
	return writeJSON(cfg.Stdout, out)
}

func codecOf(e dweeter.Encoding) crypto.Codec {
	if e == dweeter.EncodingBase64 {
		return crypto.CodecBase64
	}
	return crypto.CodecHex
}

func writeJSON(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exitFunc(1)
}
