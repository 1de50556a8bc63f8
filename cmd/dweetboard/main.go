// dweetboard serves an in-memory, dweet-compatible bulletin board.
//
// It speaks the subset of the dweet.io API that dweeter clients use, so
// mailboxes can be exercised offline:
//
//	dweetboard --addr 127.0.0.1:8080 --history 5
//	dweeter --board http://127.0.0.1:8080 send ...
//
// Records live only as long as the process.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/dweeter/client-go/internal/board"
)

const shutdownTimeout = 5 * time.Second

type config struct {
	addr     string
	history  int
	logLevel slog.Level
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (*config, error) {
	cfg := &config{}
	var level string

	flagSet := pflag.NewFlagSet("dweetboard", pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.StringVar(&cfg.addr, "addr", "127.0.0.1:8080", "listen address")
	flagSet.IntVar(&cfg.history, "history", board.DefaultHistoryLimit, "records kept per thing")
	flagSet.StringVar(&level, "log-level", "info", "log level (debug, info, warn, error)")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	if flagSet.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}
	if cfg.history < 1 {
		return nil, fmt.Errorf("--history must be at least 1, got %d", cfg.history)
	}
	if err := cfg.logLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	return cfg, nil
}

// newLogger writes text to a terminal and JSON otherwise.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

func newServer(cfg *config, logger *slog.Logger) *http.Server {
	store := board.NewStore(board.WithHistoryLimit(cfg.history))
	return &http.Server{
		Addr:              cfg.addr,
		Handler:           board.NewServer(store, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, cfg.logLevel)
	server := newServer(cfg, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("board listening", "addr", cfg.addr, "history", cfg.history)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
