package crypto

import "errors"

var (
	// ErrInvalidPadding is returned when decrypted data does not end in
	// well-formed PKCS#7 padding. It usually means the key material is wrong
	// or the ciphertext was corrupted.
	ErrInvalidPadding = errors.New("invalid padding")

	// ErrInvalidCiphertextSize is returned when the ciphertext is empty or
	// not a multiple of the block size.
	ErrInvalidCiphertextSize = errors.New("invalid ciphertext size")

	// ErrInvalidEncoding is returned when text cannot be decoded by a Codec.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrUnknownCodec is returned for a Codec value outside the defined set.
	ErrUnknownCodec = errors.New("unknown codec")
)
