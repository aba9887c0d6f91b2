// Package secure holds helpers for handling key material: wiping buffers,
// comparing them without early exit and drawing random bytes.
package secure

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"runtime"
	"sync"
)

// Key holds a copy of key bytes until Destroy is called.
type Key struct {
	data []byte
	mu   sync.RWMutex
}

// NewKey copies data into a new Key. The caller may wipe its own copy afterwards.
func NewKey(data []byte) *Key {
	k := &Key{
		data: make([]byte, len(data)),
	}
	copy(k.data, data)
	return k
}

// RandomKey returns a Key of size random bytes.
func RandomKey(size int) (*Key, error) {
	b, err := Random(size)
	if err != nil {
		return nil, err
	}
	defer Zero(b)
	return NewKey(b), nil
}

// Bytes returns a copy of the key. Callers should Zero it when done.
func (k *Key) Bytes() []byte {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]byte, len(k.data))
	copy(out, k.data)
	return out
}

func (k *Key) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.data)
}

// Destroy wipes the key. Later calls to Bytes return an empty slice.
func (k *Key) Destroy() {
	k.mu.Lock()
	defer k.mu.Unlock()

	Zero(k.data)
	k.data = nil
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// Equal compares x and y in time that depends only on their lengths.
func Equal(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}
	return subtle.ConstantTimeCompare(x, y) == 1
}

// Random returns size bytes from crypto/rand.
func Random(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("invalid size: %d", size)
	}
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		Zero(b)
		return nil, fmt.Errorf("failed to generate secure random bytes: %w", err)
	}
	return b, nil
}
