package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// EncryptMsg pads plaintext with PKCS#7 and encrypts it with AES-128-CBC
// under the fixed key and IV of km. The same plaintext always produces the
// same ciphertext.
func EncryptMsg(km KeyMaterial, plaintext []byte) []byte {
	block, err := aes.NewCipher(km.Key[:])
	if err != nil {
		// KeySize is a valid AES key length.
		panic(err)
	}

	padded := pad(plaintext)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, km.IV[:]).CryptBlocks(ciphertext, padded)
	return ciphertext
}

// DecryptMsg reverses EncryptMsg. Wrong key material is only detected when
// it happens to break the padding; otherwise the result is garbage.
func DecryptMsg(km KeyMaterial, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidCiphertextSize, len(ciphertext))
	}

	block, err := aes.NewCipher(km.Key[:])
	if err != nil {
		panic(err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, km.IV[:]).CryptBlocks(plaintext, ciphertext)
	return unpad(plaintext)
}

func pad(data []byte) []byte {
	n := BlockSize - len(data)%BlockSize
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > BlockSize {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-n], nil
}
