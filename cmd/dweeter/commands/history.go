package commands

import "github.com/spf13/cobra"

func historyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print every message the board retains, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.mailbox.History(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				a.log.Warnf("mailbox %s is empty", a.cfg.Mailbox)
			}
			for i, e := range entries {
				if e.Err != nil {
					a.log.Warnf("record %d: %v", i, e.Err)
					continue
				}
				if err := printMessage(cmd.OutOrStdout(), e.Message, false); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return cmd
}
