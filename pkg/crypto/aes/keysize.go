package aes

import "fmt"

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = 16

	// Nb is the number of 32-bit columns in the state. It never changes for AES.
	Nb = 4
)

// KeySize selects one of the three AES variants by key length in bits.
type KeySize int

const (
	AES128 KeySize = 128
	AES192 KeySize = 192
	AES256 KeySize = 256
)

// KeySizes lists the supported variants in ascending order.
var KeySizes = []KeySize{AES128, AES192, AES256}

// ParseKeySize maps a bit count to its KeySize.
func ParseKeySize(bits int) (KeySize, error) {
	size := KeySize(bits)
	if err := size.Validate(); err != nil {
		return 0, err
	}
	return size, nil
}

// Validate reports whether k is one of the supported variants.
func (k KeySize) Validate() error {
	switch k {
	case AES128, AES192, AES256:
		return nil
	default:
		return fmt.Errorf("%w: %d bits (supported: 128, 192, 256)", ErrInvalidKeySize, int(k))
	}
}

// Bytes returns the key length in bytes.
func (k KeySize) Bytes() int {
	return int(k) / 8
}

// Nk returns the number of 32-bit words in the key.
func (k KeySize) Nk() int {
	return int(k) / 32
}

// Rounds returns Nr, the number of cipher rounds.
func (k KeySize) Rounds() int {
	switch k {
	case AES128:
		return 10
	case AES192:
		return 12
	case AES256:
		return 14
	default:
		return 0
	}
}

func (k KeySize) String() string {
	return fmt.Sprintf("AES-%d", int(k))
}
