package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	dweeter "github.com/dweeter/client-go"
)

func sendCmd(a *app) *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "send [key=value ...]",
		Short: "Post a message to the mailbox",
		Long: `Post a message to the mailbox. The message is built from key=value
arguments, or read as a JSON object from standard input with --stdin.`,
		Example: `  dweeter send -m lights status=on level=3
  echo '{"status":"on","level":3}' | dweeter send -m lights --stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var data map[string]any
			var err error
			if fromStdin {
				if len(args) > 0 {
					return fmt.Errorf("--stdin takes no key=value arguments")
				}
				data, err = readJSONObject(a.stdin)
			} else {
				data, err = parsePairs(args)
			}
			if err != nil {
				return err
			}

			a.log.Infof("sending %d field(s) to %s", len(data), a.cfg.Mailbox)
			d, err := a.mailbox.Send(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s (created %s)\n",
				d.RemoteTime, d.Created.UTC().Format(dweeter.TimeFormat))
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read the message as a JSON object from standard input")
	return cmd
}

// parsePairs turns key=value arguments into a message. Values stay strings.
func parsePairs(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("nothing to send: give key=value arguments or --stdin")
	}
	data := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: want key=value", arg)
		}
		data[key] = value
	}
	return data, nil
}

func readJSONObject(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("read message: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("read message: not a JSON object")
	}
	return data, nil
}
