package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Logger prints prefixed, colored status lines. Info lines need --verbose,
// debug lines need --debug; warnings and errors are always shown.
type Logger struct {
	Verbose bool
	Debug   bool
	W       io.Writer
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		fmt.Fprintf(l.W, color.GreenString("[info] ")+msg+"\n", args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		fmt.Fprintf(l.W, color.CyanString("[debug] ")+msg+"\n", args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	fmt.Fprintf(l.W, color.YellowString("[warn] ")+msg+"\n", args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	fmt.Fprintf(l.W, color.RedString("[error] ")+msg+"\n", args...)
}
