// Package dweeter exchanges small structured messages through a public,
// unauthenticated bulletin board such as dweet.io, hiding both the board
// identifier and the content from the board.
//
// Both parties derive an AES-128 key from a shared secret. The mailbox name
// is encrypted into the board's thing name, and every message is posted as a
// single encrypted entry {stamp: json} whose JSON embeds the same stamp as
// remote_time. A receiver accepts the board's latest record only if the
// stamps match and the record's board stamp is newer than the last message
// it delivered.
//
// Basic usage:
//
//	client, err := dweeter.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	box := client.Mailbox("MAILBOX_NAME", "KEY_TO_MAILBOX")
//
//	if _, err := box.Send(ctx, map[string]any{"DATA_1": "VALUE_1"}); err != nil {
//	    log.Fatal(err)
//	}
//
//	msg, err := box.Receive(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if msg != nil {
//	    fmt.Println(msg.Data["DATA_1"])
//	}
//
// The encryption uses a fixed IV derived from the secret, so identical
// plaintexts produce identical ciphertexts, and the shape of each payload
// is visible on the board. It keeps casual readers out; it does not
// authenticate senders or resist an active attacker.
package dweeter
