// Package commands implements the dweeter command line.
//
// Every command works on one mailbox, identified by a name and a shared
// secret. Settings are layered, later sources winning:
//
//  1. the YAML config file (--config, default <user config dir>/dweeter/config.yaml)
//  2. a .env file in the working directory (never overrides the environment)
//  3. DWEETER_* environment variables
//  4. command-line flags
//
// When no secret is configured it is prompted for on the terminal.
//
// Commands:
//
//	send key=value ...     post a message
//	recv [--wait]          print the latest message
//	watch                  print messages as they arrive
//	history                print every message the board retains
//	fingerprint            print the mailbox fingerprint and board identifier
package commands
