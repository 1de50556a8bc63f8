package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Codec selects the binary-to-text transform used for board content.
type Codec int

const (
	// CodecHex encodes bytes as lower-case hexadecimal.
	CodecHex Codec = iota
	// CodecBase64 encodes bytes as standard base64 with padding.
	CodecBase64
)

// String returns the codec name.
func (c Codec) String() string {
	switch c {
	case CodecHex:
		return "hex"
	case CodecBase64:
		return "base64"
	default:
		return fmt.Sprintf("codec(%d)", int(c))
	}
}

// Encode converts data to text.
func (c Codec) Encode(data []byte) string {
	if c == CodecBase64 {
		return base64.StdEncoding.EncodeToString(data)
	}
	return hex.EncodeToString(data)
}

// Decode converts text produced by Encode back to bytes.
func (c Codec) Decode(s string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch c {
	case CodecHex:
		data, err = hex.DecodeString(s)
	case CodecBase64:
		data, err = base64.StdEncoding.DecodeString(s)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, int(c))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidEncoding, c, err)
	}
	return data, nil
}
