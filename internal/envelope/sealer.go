package envelope

import (
	"fmt"
	"unicode/utf8"

	"github.com/dweeter/client-go/internal/crypto"
)

// Sealer encrypts and decrypts envelope text under one shared secret.
// It is immutable and safe for concurrent use.
type Sealer struct {
	km    crypto.KeyMaterial
	codec crypto.Codec
}

// NewSealer derives key material from secret. Base64 mode swaps the key and
// IV halves, so a secret sealed in one mode is unreadable in the other.
func NewSealer(secret string, codec crypto.Codec) *Sealer {
	return &Sealer{
		km:    crypto.DeriveKeyMaterial(secret, codec == crypto.CodecBase64),
		codec: codec,
	}
}

// Codec returns the codec used for content.
func (s *Sealer) Codec() crypto.Codec {
	return s.codec
}

// SealThing encrypts a board identifier. The result is always hex.
func (s *Sealer) SealThing(name string) string {
	return crypto.CodecHex.Encode(crypto.EncryptMsg(s.km, []byte(name)))
}

// OpenThing reverses SealThing.
func (s *Sealer) OpenThing(thing string) (string, error) {
	return s.open(crypto.CodecHex, thing)
}

// SealText encrypts one content key or value.
func (s *Sealer) SealText(text string) string {
	return s.codec.Encode(crypto.EncryptMsg(s.km, []byte(text)))
}

// OpenText reverses SealText.
func (s *Sealer) OpenText(text string) (string, error) {
	return s.open(s.codec, text)
}

func (s *Sealer) open(codec crypto.Codec, text string) (string, error) {
	ciphertext, err := codec.Decode(text)
	if err != nil {
		return "", err
	}
	plaintext, err := crypto.DecryptMsg(s.km, ciphertext)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plaintext) {
		return "", ErrInvalidUTF8
	}
	return string(plaintext), nil
}

// Seal encrypts every key and value of content independently.
func (s *Sealer) Seal(content map[string]string) map[string]any {
	sealed := make(map[string]any, len(content))
	for k, v := range content {
		sealed[s.SealText(k)] = s.SealText(v)
	}
	return sealed
}

// Open decrypts every key and value of board content. The first entry that
// fails stops the walk.
func (s *Sealer) Open(content map[string]any) (map[string]string, error) {
	opened := make(map[string]string, len(content))
	for k, v := range content {
		text, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrNonText, v)
		}
		key, err := s.OpenText(k)
		if err != nil {
			return nil, fmt.Errorf("open key: %w", err)
		}
		value, err := s.OpenText(text)
		if err != nil {
			return nil, fmt.Errorf("open value: %w", err)
		}
		opened[key] = value
	}
	return opened, nil
}
