package commands

import (
	"time"

	"github.com/spf13/cobra"

	dweeter "github.com/dweeter/client-go"
)

func recvCmd(a *app) *cobra.Command {
	var (
		wait    bool
		timeout time.Duration
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "recv",
		Short: "Print the mailbox's latest message",
		Long: `Print the mailbox's latest message as JSON. With --wait, poll until a
message arrives or the timeout expires.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			msg, err := a.mailbox.Receive(ctx)
			if err != nil {
				return err
			}

			if msg == nil && wait {
				stop := startSpinner(cmd.ErrOrStderr(), "Waiting for a message...", a.verbose || a.debug)
				a.log.Infof("waiting up to %v for a message", timeout)
				msg, err = a.mailbox.WaitForMessage(ctx, dweeter.WithWaitTimeout(timeout))
				stop()
				if err != nil {
					return err
				}
			}

			if msg == nil {
				a.log.Warnf("mailbox %s is empty", a.cfg.Mailbox)
				return nil
			}
			return printMessage(cmd.OutOrStdout(), msg, !compact)
		},
	}
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for a message if the mailbox is empty")
	cmd.Flags().DurationVar(&timeout, "wait-timeout", time.Minute, "how long --wait waits")
	cmd.Flags().BoolVar(&compact, "compact", false, "print JSON on one line")
	return cmd
}
