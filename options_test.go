package dweeter

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/dweeter/client-go/internal/crypto"
)

func TestEncoding_Constants(t *testing.T) {
	if EncodingHex != "hex" {
		t.Errorf("EncodingHex = %s, want hex", EncodingHex)
	}
	if EncodingBase64 != "base64" {
		t.Errorf("EncodingBase64 = %s, want base64", EncodingBase64)
	}
	if EncodingHex.codec() != crypto.CodecHex || EncodingBase64.codec() != crypto.CodecBase64 {
		t.Error("encodings map to the wrong codecs")
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in      string
		want    Encoding
		wantErr bool
	}{
		{"", EncodingHex, false},
		{"hex", EncodingHex, false},
		{"base64", EncodingBase64, false},
		{"HEX", "", true},
		{"base32", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEncoding(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEncoding(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEncoding(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultConstants(t *testing.T) {
	if defaultBaseURL != "https://dweet.io" {
		t.Errorf("defaultBaseURL = %s, want https://dweet.io", defaultBaseURL)
	}
	if defaultWaitTimeout != 60*time.Second {
		t.Errorf("defaultWaitTimeout = %v, want 60s", defaultWaitTimeout)
	}
}

func TestWithBaseURL(t *testing.T) {
	cfg := &clientConfig{}
	WithBaseURL("http://localhost:8080")(cfg)
	if cfg.baseURL != "http://localhost:8080" {
		t.Errorf("baseURL = %s, want http://localhost:8080", cfg.baseURL)
	}
}

func TestWithHTTPClient(t *testing.T) {
	cfg := &clientConfig{}
	customClient := &http.Client{Timeout: 99 * time.Second}
	WithHTTPClient(customClient)(cfg)
	if cfg.httpClient != customClient {
		t.Error("httpClient was not set")
	}
}

func TestWithTimeout(t *testing.T) {
	cfg := &clientConfig{}
	WithTimeout(45 * time.Second)(cfg)
	if cfg.timeout != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", cfg.timeout)
	}
}

func TestWithRetries(t *testing.T) {
	cfg := &clientConfig{}
	WithRetries(5)(cfg)
	if cfg.retries != 5 {
		t.Errorf("retries = %d, want 5", cfg.retries)
	}
}

func TestWithRetryOn(t *testing.T) {
	cfg := &clientConfig{}
	WithRetryOn([]int{500, 503})(cfg)
	if len(cfg.retryOn) != 2 || cfg.retryOn[0] != 500 || cfg.retryOn[1] != 503 {
		t.Errorf("retryOn = %v, want [500 503]", cfg.retryOn)
	}
}

func TestWithRetryDelay(t *testing.T) {
	cfg := &clientConfig{}
	WithRetryDelay(250 * time.Millisecond)(cfg)
	if cfg.retryDelay != 250*time.Millisecond {
		t.Errorf("retryDelay = %v, want 250ms", cfg.retryDelay)
	}
}

func TestWithDebugAndLogger(t *testing.T) {
	cfg := &clientConfig{}
	logger := slog.New(slog.DiscardHandler)
	WithDebug(true)(cfg)
	WithLogger(logger)(cfg)
	if !cfg.debug {
		t.Error("debug was not set")
	}
	if cfg.logger != logger {
		t.Error("logger was not set")
	}
}

func TestWithClock(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	cfg := &clientConfig{}
	WithClock(func() time.Time { return fixed })(cfg)
	if !cfg.clock().Equal(fixed) {
		t.Errorf("clock() = %v, want %v", cfg.clock(), fixed)
	}
}

func TestWithPollingConfig(t *testing.T) {
	cfg := &clientConfig{}
	WithPollingInitialInterval(500 * time.Millisecond)(cfg)
	WithPollingMaxBackoff(10 * time.Second)(cfg)
	WithPollingBackoffMultiplier(2.0)(cfg)
	WithPollingJitterFactor(0.1)(cfg)

	if cfg.pollingInitialInterval != 500*time.Millisecond {
		t.Errorf("pollingInitialInterval = %v, want 500ms", cfg.pollingInitialInterval)
	}
	if cfg.pollingMaxBackoff != 10*time.Second {
		t.Errorf("pollingMaxBackoff = %v, want 10s", cfg.pollingMaxBackoff)
	}
	if cfg.pollingBackoffMultiplier != 2.0 {
		t.Errorf("pollingBackoffMultiplier = %v, want 2.0", cfg.pollingBackoffMultiplier)
	}
	if cfg.pollingJitterFactor != 0.1 {
		t.Errorf("pollingJitterFactor = %v, want 0.1", cfg.pollingJitterFactor)
	}
}

func TestWithEncoding(t *testing.T) {
	cfg := &mailboxConfig{}
	WithEncoding(EncodingBase64)(cfg)
	if cfg.encoding != EncodingBase64 {
		t.Errorf("encoding = %s, want base64", cfg.encoding)
	}
}

func TestWithPredicate(t *testing.T) {
	cfg := &waitConfig{}
	WithPredicate(func(*Message) bool { return true })(cfg)
	if cfg.predicate == nil {
		t.Error("predicate was not set")
	}
}

func TestWithWaitTimeout(t *testing.T) {
	cfg := &waitConfig{}
	WithWaitTimeout(30 * time.Second)(cfg)
	if cfg.timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.timeout)
	}
}
