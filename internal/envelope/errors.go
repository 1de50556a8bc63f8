package envelope

import "errors"

var (
	// ErrInvalidUTF8 is returned when a decrypted name, key or value is not
	// valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("decrypted text is not valid UTF-8")

	// ErrNonText is returned when a board content value is not a string and
	// therefore cannot be a sealed value.
	ErrNonText = errors.New("content value is not text")

	// ErrBoard wraps a failure of the underlying board call.
	ErrBoard = errors.New("board request failed")
)
