package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	dweeter "github.com/dweeter/client-go"
	"github.com/dweeter/client-go/internal/crypto"
)

func fingerprintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the mailbox fingerprint and board identifier",
		Long: `Print a short fingerprint of the mailbox name, secret and encoding. Two
parties holding the same mailbox see the same fingerprint, so comparing it
out of band confirms they share the secret without revealing it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := mailboxFingerprint(a.cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fingerprint: %s\n", fp)
			fmt.Fprintf(out, "Thing:       %s\n", a.mailbox.Thing())
			return nil
		},
	}
}

// mailboxFingerprint derives the fingerprint for cfg's mailbox.
func mailboxFingerprint(cfg Config) (string, error) {
	encoding, err := dweeter.ParseEncoding(cfg.Encoding)
	if err != nil {
		return "", err
	}
	return crypto.Fingerprint(cfg.Secret, cfg.Mailbox, encoding == dweeter.EncodingBase64)
}
