package crypto

import (
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Fingerprint returns a short hex digest identifying a mailbox: the shared
// secret, the mailbox name and whether key/IV halves are swapped. Both ends
// of a mailbox compute the same value, and it does not reveal the derived
// key material. A low-entropy secret can still be guessed offline from it.
func Fingerprint(secret, name string, swap bool) (string, error) {
	info := FingerprintContext
	if swap {
		info += ":swap"
	}

	// The mailbox name salts the extraction step; an empty name falls back
	// to the zero salt of RFC 5869.
	salt := []byte(name)
	if len(salt) == 0 {
		salt = make([]byte, sha512.Size)
	}

	out := make([]byte, FingerprintSize)
	if _, err := io.ReadFull(hkdf.New(sha512.New, []byte(secret), salt, []byte(info)), out); err != nil {
		return "", fmt.Errorf("derive fingerprint: %w", err)
	}
	return CodecHex.Encode(out), nil
}
