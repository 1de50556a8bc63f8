//go:build !testcoverage

package main

import "os"

func main() {
	err := run(os.Args, DefaultConfig())
	if err == nil {
		return
	}
	if name := command(os.Args); name != "" {
		fatal("%s: %v", name, err)
		return
	}
	fatal("%v", err)
}
