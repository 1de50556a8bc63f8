package crypto

import "crypto/aes"

const (
	// KeySize is the size of the AES-128 key carried in KeyMaterial.
	KeySize = 16
	// IVSize is the size of the CBC initialization vector.
	IVSize = aes.BlockSize
	// BlockSize is the AES block size; ciphertexts are always a multiple of it.
	BlockSize = aes.BlockSize

	// FingerprintContext is the HKDF info string used for identity fingerprints.
	FingerprintContext = "dweeter:fingerprint:v1"
	// FingerprintSize is the number of fingerprint bytes before encoding.
	FingerprintSize = 10
)
