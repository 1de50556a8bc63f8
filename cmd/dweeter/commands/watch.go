package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	dweeter "github.com/dweeter/client-go"
)

func watchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print messages as they arrive",
		Long: `Poll the mailbox and print each new message as one line of JSON until
interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := notifyContext(cmd.Context())
			defer stop()

			a.log.Infof("watching %s, press Ctrl-C to stop", a.cfg.Mailbox)
			var printErr error
			a.mailbox.WatchFunc(ctx, func(msg *dweeter.Message) {
				if err := printMessage(cmd.OutOrStdout(), msg, false); err != nil && printErr == nil {
					printErr = err
					stop()
				}
			})
			return printErr
		},
	}
	cmd.Flags().DurationVar(&a.pollInterval, "interval", 0, "initial polling interval (default 2s)")
	return cmd
}

// notifyContext is canceled on interrupt or termination.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
