// Package envelope turns plaintext board traffic into encrypted envelopes and
// back.
//
// A [Sealer] holds the key material derived from a shared secret and a text
// codec. The board identifier (thing name) is always sealed to hex so it is
// safe in a URL path; content keys and values are sealed independently and
// rendered with the sealer's codec. Because the cipher runs with a fixed IV,
// equal plaintexts seal to equal ciphertexts, which is what lets two parties
// find the same thing on the board.
//
// A [Channel] pairs a Sealer with a [Board] and exposes the three board
// operations over plaintext names and content.
package envelope
