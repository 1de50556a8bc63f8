package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Board != "https://dweet.io" {
		t.Errorf("Board = %s, want https://dweet.io", cfg.Board)
	}
	if cfg.Encoding != "hex" {
		t.Errorf("Encoding = %s, want hex", cfg.Encoding)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestConfig_MergeFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
board: http://localhost:8080
mailbox: lights
encoding: base64
timeout: 5s
retries: 2
`)

	cfg := defaultConfig()
	if err := cfg.mergeFile(path, true); err != nil {
		t.Fatalf("mergeFile() error = %v", err)
	}

	want := Config{
		Board:    "http://localhost:8080",
		Mailbox:  "lights",
		Encoding: "base64",
		Timeout:  5 * time.Second,
		Retries:  2,
	}
	if cfg != want {
		t.Errorf("config = %+v, want %+v", cfg, want)
	}
}

func TestConfig_MergeFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg := defaultConfig()
	if err := cfg.mergeFile(missing, false); err != nil {
		t.Errorf("optional missing file: error = %v", err)
	}
	if err := cfg.mergeFile(missing, true); err == nil {
		t.Error("required missing file should fail")
	}
	if err := cfg.mergeFile("", true); err != nil {
		t.Errorf("empty path: error = %v", err)
	}
}

func TestConfig_MergeFileInvalid(t *testing.T) {
	path := writeFile(t, "config.yaml", "timeout: [not a duration\n")

	cfg := defaultConfig()
	err := cfg.mergeFile(path, true)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Errorf("mergeFile() error = %v, want parse error", err)
	}
}

func TestConfig_MergeEnv(t *testing.T) {
	cfg := defaultConfig()
	err := cfg.mergeEnv(mapLookup(map[string]string{
		envBoard:    "http://board",
		envMailbox:  "m",
		envSecret:   "s",
		envEncoding: "base64",
		envTimeout:  "1m",
		envRetries:  "3",
	}))
	if err != nil {
		t.Fatalf("mergeEnv() error = %v", err)
	}

	want := Config{Board: "http://board", Mailbox: "m", Secret: "s", Encoding: "base64", Timeout: time.Minute, Retries: 3}
	if cfg != want {
		t.Errorf("config = %+v, want %+v", cfg, want)
	}
}

func TestConfig_MergeEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"timeout", map[string]string{envTimeout: "soon"}},
		{"retries", map[string]string{envRetries: "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			if err := cfg.mergeEnv(mapLookup(tt.env)); err == nil {
				t.Error("mergeEnv() should fail")
			}
		})
	}
}

func TestEnvLookup_DotenvBelowEnvironment(t *testing.T) {
	dotenv := writeFile(t, ".env", "DWEETER_MAILBOX=from-dotenv\nDWEETER_SECRET=dotenv-secret\n")

	lookup, err := envLookup(mapLookup(map[string]string{envMailbox: "from-env"}), dotenv)
	if err != nil {
		t.Fatalf("envLookup() error = %v", err)
	}

	if v, _ := lookup(envMailbox); v != "from-env" {
		t.Errorf("%s = %s, want from-env", envMailbox, v)
	}
	if v, _ := lookup(envSecret); v != "dotenv-secret" {
		t.Errorf("%s = %s, want dotenv-secret", envSecret, v)
	}
	if _, ok := lookup(envBoard); ok {
		t.Errorf("%s should be unset", envBoard)
	}
}

func TestEnvLookup_MissingDotenv(t *testing.T) {
	lookup, err := envLookup(mapLookup(nil), filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("envLookup() error = %v", err)
	}
	if _, ok := lookup(envMailbox); ok {
		t.Error("lookup should find nothing")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Board: "http://b", Mailbox: "m", Encoding: "hex"}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"no board", func(c *Config) { c.Board = "" }, true},
		{"no mailbox", func(c *Config) { c.Mailbox = "" }, true},
		{"bad encoding", func(c *Config) { c.Encoding = "base32" }, true},
		{"negative retries", func(c *Config) { c.Retries = -1 }, true},
		{"empty encoding is hex", func(c *Config) { c.Encoding = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.validate(); (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
