package board

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dweeter/client-go/internal/api"
)

func newTestServer(t *testing.T) (*httptest.Server, *api.Client) {
	t.Helper()
	server := httptest.NewServer(NewServer(NewStore(), nil))
	t.Cleanup(server.Close)

	client, err := api.New(api.WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}
	return server, client
}

func TestServer_WithAPIClient(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	posted, err := client.DweetFor(ctx, "abcd", map[string]any{"k": "v"})
	if err != nil {
		t.Fatalf("DweetFor() error = %v", err)
	}
	if posted.Thing != "abcd" || posted.Transaction == "" {
		t.Errorf("DweetFor() = %+v", posted)
	}

	latest, err := client.GetLatestDweetFor(ctx, "abcd")
	if err != nil {
		t.Fatalf("GetLatestDweetFor() error = %v", err)
	}
	if len(latest) != 1 || latest[0].Content["k"] != "v" {
		t.Fatalf("GetLatestDweetFor() = %+v", latest)
	}
	if !latest[0].Created.Equal(posted.Created) {
		t.Errorf("Created = %v, want %v", latest[0].Created, posted.Created)
	}

	client.DweetFor(ctx, "abcd", map[string]any{"k": "w"})
	all, err := client.GetDweetsFor(ctx, "abcd")
	if err != nil {
		t.Fatalf("GetDweetsFor() error = %v", err)
	}
	if len(all) != 2 || all[0].Content["k"] != "v" || all[1].Content["k"] != "w" {
		t.Errorf("GetDweetsFor() = %+v, want oldest first", all)
	}
}

func TestServer_UnknownThing(t *testing.T) {
	_, client := newTestServer(t)

	latest, err := client.GetLatestDweetFor(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetLatestDweetFor() error = %v", err)
	}
	if len(latest) != 0 {
		t.Errorf("len(latest) = %d, want 0", len(latest))
	}
}

func TestServer_QueryDweet(t *testing.T) {
	server, client := newTestServer(t)

	resp, err := http.Get(server.URL + "/dweet/for/abcd?hello=world")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	latest, _ := client.GetLatestDweetFor(context.Background(), "abcd")
	if len(latest) != 1 || latest[0].Content["hello"] != "world" {
		t.Errorf("GetLatestDweetFor() = %+v", latest)
	}
}

func TestServer_BadBody(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/dweet/for/abcd", "application/json", strings.NewReader(`[1,2]`))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/nope")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
