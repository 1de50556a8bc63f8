// Package crypto provides the primitives of the dweeter envelope protocol:
// key derivation from a shared secret, a fixed-IV AES-CBC cipher and the
// text codecs used to put ciphertext on a public bulletin board.
//
// # Algorithms
//
//   - SHA-256 key derivation ([DeriveKeyMaterial]): the digest of the shared
//     secret is split into a 16-byte AES-128 key and a 16-byte CBC IV.
//     Base64 mailboxes swap the two halves.
//
//   - AES-128-CBC with PKCS#7 padding ([EncryptMsg], [DecryptMsg]). There is
//     no authentication tag. A wrong key is reported as [ErrInvalidPadding]
//     only when the garbage it produces does not look like padding.
//
//   - Text codecs ([CodecHex], [CodecBase64]) for board-safe strings.
//
//   - HKDF-SHA-512 fingerprints ([Fingerprint]) so two parties can confirm
//     they configured the same mailbox without exchanging the secret.
//
// # Fixed IV
//
// The IV is derived from the secret and reused for every message. Equal
// plaintext prefixes therefore encrypt to equal leading ciphertext blocks,
// and equal plaintexts to equal ciphertexts. This is what makes the
// encrypted thing name stable, so it is part of the wire protocol: moving
// to a random per-message IV would break compatibility with existing peers.
package crypto
