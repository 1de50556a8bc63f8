//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/google/uuid"

	dweeter "github.com/dweeter/client-go"
	"github.com/dweeter/client-go/internal/crypto"
	"github.com/dweeter/client-go/internal/envelope"
)

// peerCommand returns the command line of another implementation that
// speaks the cmd/testhelper JSON protocol. Tests skip when it is unset.
func peerCommand(t *testing.T) []string {
	t.Helper()
	cmd := strings.Fields(os.Getenv("DWEETER_PEER_CMD"))
	if len(cmd) == 0 {
		t.Skip("DWEETER_PEER_CMD not set")
	}
	return cmd
}

func runPeer(t *testing.T, command string, request, out any) {
	t.Helper()
	argv := peerCommand(t)

	input, err := json.Marshal(request)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	ctx := testContext(t)
	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], command)...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Env = append(os.Environ(), "DWEETER_URL="+boardURL)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.Output()
	if err != nil {
		t.Fatalf("peer %s: %v (stderr %q)", command, err, stderr.String())
	}
	if err := json.Unmarshal(stdout, out); err != nil {
		t.Fatalf("peer %s output %q: %v", command, stdout, err)
	}
}

func TestCrossImpl_ThingName(t *testing.T) {
	for _, encoding := range []string{"hex", "base64"} {
		t.Run(encoding, func(t *testing.T) {
			var out struct {
				Thing string `json:"thing"`
			}
			runPeer(t, "thing", map[string]string{
				"secret": "KEY_TO_MAILBOX", "encoding": encoding, "name": "MAILBOX_NAME",
			}, &out)

			codec := crypto.CodecHex
			if encoding == "base64" {
				codec = crypto.CodecBase64
			}
			want := envelope.NewSealer("KEY_TO_MAILBOX", codec).SealThing("MAILBOX_NAME")
			if out.Thing != want {
				t.Errorf("peer thing = %s, want %s", out.Thing, want)
			}
		})
	}
}

func TestCrossImpl_PeerOpensOurContent(t *testing.T) {
	sealer := envelope.NewSealer("shared secret", crypto.CodecHex)
	sealed := sealer.Seal(map[string]string{"greeting": "hello from go"})

	var out struct {
		Content map[string]string `json:"content"`
	}
	runPeer(t, "open", map[string]any{"secret": "shared secret", "encoding": "hex", "content": sealed}, &out)

	if out.Content["greeting"] != "hello from go" {
		t.Errorf("peer opened %v", out.Content)
	}
}

func TestCrossImpl_PeerSendsWeReceive(t *testing.T) {
	name, secret := uniqueMailbox(), uuid.NewString()

	var sent struct {
		Thing      string `json:"thing"`
		RemoteTime string `json:"remote_time"`
	}
	runPeer(t, "send", map[string]any{
		"secret": secret, "encoding": "hex", "name": name,
		"data": map[string]any{"from": "peer"},
	}, &sent)

	box := newClient(t).Mailbox(name, secret)
	if sent.Thing != box.Thing() {
		t.Errorf("peer thing = %s, want %s", sent.Thing, box.Thing())
	}

	msg, err := box.Receive(context.Background())
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if msg == nil || msg.Data["from"] != "peer" || msg.RemoteTime != sent.RemoteTime {
		t.Errorf("Receive() = %+v, peer sent %+v", msg, sent)
	}
}

func TestCrossImpl_WeSendPeerReceives(t *testing.T) {
	name, secret := uniqueMailbox(), uuid.NewString()

	box := newClient(t).Mailbox(name, secret, dweeter.WithEncoding(dweeter.EncodingBase64))
	d, err := box.Send(testContext(t), map[string]any{"from": "go"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	var out struct {
		Message map[string]any `json:"message"`
	}
	runPeer(t, "receive", map[string]any{"secret": secret, "encoding": "base64", "name": name}, &out)

	if out.Message["from"] != "go" || out.Message[dweeter.FieldRemoteTime] != d.RemoteTime {
		t.Errorf("peer received %v", out.Message)
	}
}
