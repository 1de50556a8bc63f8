package main

import (
	"os"

	"github.com/dweeter/client-go/cmd/dweeter/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
