package crypto

import "crypto/sha256"

// KeyMaterial is the fixed AES key and CBC IV derived from a shared secret.
type KeyMaterial struct {
	Key [KeySize]byte
	IV  [IVSize]byte
}

// DeriveKeyMaterial hashes passphrase with SHA-256 and splits the digest:
// the first half becomes the key and the second half the IV. With swap set
// the halves trade places, which base64 mailboxes use to land in a separate
// namespace on the board.
func DeriveKeyMaterial(passphrase string, swap bool) KeyMaterial {
	sum := sha256.Sum256([]byte(passphrase))

	var km KeyMaterial
	if swap {
		copy(km.Key[:], sum[KeySize:])
		copy(km.IV[:], sum[:KeySize])
	} else {
		copy(km.Key[:], sum[:KeySize])
		copy(km.IV[:], sum[KeySize:])
	}
	return km
}
