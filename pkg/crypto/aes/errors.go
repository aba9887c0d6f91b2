package aes

import "errors"

var (
	// ErrInvalidKeySize is returned for a key size other than 128, 192 or 256 bits.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidKeyLength is returned when the key bytes do not match the selected key size.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidBlockLength is returned when a block is not exactly 16 bytes.
	ErrInvalidBlockLength = errors.New("invalid block length")

	// ErrInvalidByteValue is returned when a value outside 0-255 is handed to the codec.
	ErrInvalidByteValue = errors.New("invalid byte value")
)
