package aes

import (
	"crypto/rand"
	"fmt"
	"io"
)

// GenerateKey returns a random key of the given size read from crypto/rand.
func GenerateKey(size KeySize) ([]byte, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}

	key := make([]byte, size.Bytes())
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}
