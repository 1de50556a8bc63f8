package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	dweeter "github.com/dweeter/client-go"
)

// app carries the state shared by every command.
type app struct {
	configPath string
	dotenvPath string
	flags      Config
	verbose    bool
	debug      bool

	// pollInterval is set by the watch command.
	pollInterval time.Duration

	getenv       func(string) (string, bool)
	promptSecret func() (string, error)
	stdin        io.Reader

	cfg     Config
	log     Logger
	client  *dweeter.Client
	mailbox *dweeter.Mailbox
}

func newApp() *app {
	return &app{
		dotenvPath:   ".env",
		getenv:       os.LookupEnv,
		promptSecret: promptTerminalSecret,
		stdin:        os.Stdin,
	}
}

// Execute runs the dweeter command line.
func Execute() error {
	a := newApp()
	return run(newRootCmd(a), a)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "dweeter",
		Short:         "Encrypted mailboxes on a public bulletin board",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default <user config dir>/dweeter/config.yaml)")
	flags.StringVar(&a.flags.Board, "board", "", "bulletin board base URL")
	flags.StringVarP(&a.flags.Mailbox, "mailbox", "m", "", "mailbox name")
	flags.StringVarP(&a.flags.Secret, "secret", "s", "", "shared secret (prefer the prompt or "+envSecret+")")
	flags.StringVar(&a.flags.Encoding, "encoding", "", "ciphertext encoding: hex or base64")
	flags.DurationVar(&a.flags.Timeout, "timeout", 0, "HTTP timeout per board call")
	flags.IntVar(&a.flags.Retries, "retries", 0, "retries for failed board calls")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "show progress messages")
	flags.BoolVar(&a.debug, "debug", false, "show debug messages and client diagnostics")

	root.AddCommand(
		sendCmd(a),
		recvCmd(a),
		watchCmd(a),
		historyCmd(a),
		fingerprintCmd(a),
	)
	return root
}

// run executes root and reports a failure through the logger.
func run(root *cobra.Command, a *app) error {
	err := root.Execute()
	if err != nil {
		if a.log.W == nil {
			a.log.W = root.ErrOrStderr()
		}
		a.log.Errorf("%v", err)
	}
	return err
}

// setup resolves the configuration and builds the mailbox.
func (a *app) setup(cmd *cobra.Command) error {
	a.log = Logger{Verbose: a.verbose, Debug: a.debug, W: cmd.ErrOrStderr()}

	cfg, err := a.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	if cfg.Secret == "" {
		secret, err := a.promptSecret()
		if err != nil {
			return err
		}
		cfg.Secret = secret
	}
	a.cfg = cfg

	opts := []dweeter.Option{
		dweeter.WithBaseURL(cfg.Board),
		dweeter.WithTimeout(cfg.Timeout),
		dweeter.WithRetries(cfg.Retries),
	}
	if a.pollInterval > 0 {
		opts = append(opts, dweeter.WithPollingInitialInterval(a.pollInterval))
	}
	if a.debug {
		opts = append(opts,
			dweeter.WithDebug(true),
			dweeter.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
				&slog.HandlerOptions{Level: slog.LevelDebug}))),
		)
	}
	a.client, err = dweeter.New(opts...)
	if err != nil {
		return err
	}

	encoding, _ := dweeter.ParseEncoding(cfg.Encoding)
	a.mailbox = a.client.Mailbox(cfg.Mailbox, cfg.Secret, dweeter.WithEncoding(encoding))
	a.log.Debugf("mailbox %q on %s (thing %s)", cfg.Mailbox, a.client.BaseURL(), a.mailbox.Thing())
	return nil
}

func (a *app) resolveConfig(cmd *cobra.Command) (Config, error) {
	cfg := defaultConfig()

	lookup, err := envLookup(a.getenv, a.dotenvPath)
	if err != nil {
		return cfg, err
	}

	path, required := a.configPath, a.configPath != ""
	if !required {
		if v, ok := lookup(envConfig); ok {
			path, required = v, true
		} else {
			path = defaultConfigPath()
		}
	}
	if err := cfg.mergeFile(path, required); err != nil {
		return cfg, err
	}
	a.log.Debugf("config file %s", path)

	if err := cfg.mergeEnv(lookup); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("board") {
		cfg.Board = a.flags.Board
	}
	if flags.Changed("mailbox") {
		cfg.Mailbox = a.flags.Mailbox
	}
	if flags.Changed("secret") {
		cfg.Secret = a.flags.Secret
	}
	if flags.Changed("encoding") {
		cfg.Encoding = a.flags.Encoding
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.flags.Timeout
	}
	if flags.Changed("retries") {
		cfg.Retries = a.flags.Retries
	}
	return cfg, nil
}

// promptTerminalSecret reads the secret from the terminal with echo off.
func promptTerminalSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no secret configured and no terminal to prompt on (set %s)", envSecret)
	}

	fmt.Fprint(os.Stderr, "Secret: ")
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	if len(strings.TrimSpace(string(secret))) == 0 {
		return "", errors.New("empty secret")
	}
	return string(secret), nil
}
