package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	dweeter "github.com/dweeter/client-go"
)

// printMessage writes msg, reserved fields included, as one JSON object.
// indent selects pretty output.
func printMessage(w io.Writer, msg *dweeter.Message, indent bool) error {
	var data []byte
	var err error
	if indent {
		data, err = json.MarshalIndent(msg.Map(), "", "  ")
	} else {
		data, err = json.Marshal(msg.Map())
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// startSpinner shows message on a spinner unless verbose or debug output
// would interleave with it. The returned function stops it.
func startSpinner(w io.Writer, message string, verbose bool) func() {
	if verbose {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	_ = s.Color("cyan")

	// Start is a no-op unless w is a terminal.
	s.Start()
	return s.Stop
}
