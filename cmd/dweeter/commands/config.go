package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	dweeter "github.com/dweeter/client-go"
)

// Environment variables read by the CLI.
const (
	envConfig   = "DWEETER_CONFIG"
	envBoard    = "DWEETER_BOARD"
	envMailbox  = "DWEETER_MAILBOX"
	envSecret   = "DWEETER_SECRET"
	envEncoding = "DWEETER_ENCODING"
	envTimeout  = "DWEETER_TIMEOUT"
	envRetries  = "DWEETER_RETRIES"
)

// Config is the resolved CLI configuration.
type Config struct {
	Board    string        `yaml:"board"`
	Mailbox  string        `yaml:"mailbox"`
	Secret   string        `yaml:"secret"`
	Encoding string        `yaml:"encoding"`
	Timeout  time.Duration `yaml:"timeout"`
	Retries  int           `yaml:"retries"`
}

func defaultConfig() Config {
	return Config{
		Board:    "https://dweet.io",
		Encoding: string(dweeter.EncodingHex),
		Timeout:  30 * time.Second,
	}
}

// defaultConfigPath returns <user config dir>/dweeter/config.yaml, or "" if
// the platform has no config dir.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dweeter", "config.yaml")
}

// mergeFile overlays the YAML file at path. A missing file is an error only
// when required is set.
func (c *Config) mergeFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// mergeEnv overlays every variable lookup finds.
func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envBoard); ok {
		c.Board = v
	}
	if v, ok := lookup(envMailbox); ok {
		c.Mailbox = v
	}
	if v, ok := lookup(envSecret); ok {
		c.Secret = v
	}
	if v, ok := lookup(envEncoding); ok {
		c.Encoding = v
	}
	if v, ok := lookup(envTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envTimeout, err)
		}
		c.Timeout = d
	}
	if v, ok := lookup(envRetries); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envRetries, err)
		}
		c.Retries = n
	}
	return nil
}

// envLookup resolves variables from the process environment first and the
// .env file at dotenvPath second. A missing .env file is ignored.
func envLookup(getenv func(string) (string, bool), dotenvPath string) (func(string) (string, bool), error) {
	dotenv := map[string]string{}
	if dotenvPath != "" {
		values, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			dotenv = values
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", dotenvPath, err)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := getenv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// validate checks the settings every command needs, except the secret.
func (c *Config) validate() error {
	if c.Board == "" {
		return errors.New("no board URL configured")
	}
	if c.Mailbox == "" {
		return fmt.Errorf("no mailbox configured (use --mailbox or %s)", envMailbox)
	}
	if _, err := dweeter.ParseEncoding(c.Encoding); err != nil {
		return err
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	return nil
}
