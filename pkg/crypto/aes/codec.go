package aes

import (
	"bytes"
	"fmt"
)

// ToBlocks splits data into states of 16 bytes, padding the last one with NUL
// bytes. Empty input yields no blocks.
func ToBlocks(data []byte) []State {
	states := make([]State, 0, (len(data)+BlockSize-1)/BlockSize)
	for len(data) > 0 {
		var block [BlockSize]byte
		n := copy(block[:], data)
		data = data[n:]

		states = append(states, stateFrom(block))
	}
	return states
}

// FromBlocks joins states back into bytes and strips trailing NUL bytes.
// Plaintext that genuinely ends in NUL loses those bytes here.
func FromBlocks(states []State) []byte {
	return bytes.TrimRight(joinStates(states), "\x00")
}

// StatesFromBytes splits ciphertext into states without padding. The length
// must be a whole number of blocks.
func StatesFromBytes(data []byte) ([]State, error) {
	if len(data)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d",
			ErrInvalidBlockLength, len(data), BlockSize)
	}

	states := make([]State, len(data)/BlockSize)
	for i := range states {
		s, err := NewState(data[i*BlockSize : (i+1)*BlockSize])
		if err != nil {
			return nil, err
		}
		states[i] = s
	}
	return states, nil
}

// StatesFromValues builds states from integer byte values, as produced by
// parsing a textual ciphertext. Every value must lie in 0-255.
func StatesFromValues(values []int) ([]State, error) {
	data := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 0xFF {
			return nil, fmt.Errorf("%w: %d at position %d", ErrInvalidByteValue, v, i)
		}
		data[i] = byte(v)
	}
	return StatesFromBytes(data)
}

// JoinStates concatenates states without touching padding.
func JoinStates(states []State) []byte {
	return joinStates(states)
}

func joinStates(states []State) []byte {
	out := make([]byte, len(states)*BlockSize)
	for i, s := range states {
		s.put(out[i*BlockSize:])
	}
	return out
}

// EncryptBlocks encrypts each state independently.
func (c *Cipher) EncryptBlocks(states []State) []State {
	out := make([]State, len(states))
	for i, s := range states {
		out[i] = c.EncryptState(s)
	}
	return out
}

// DecryptBlocks decrypts each state independently.
func (c *Cipher) DecryptBlocks(states []State) []State {
	out := make([]State, len(states))
	for i, s := range states {
		out[i] = c.DecryptState(s)
	}
	return out
}

// EncryptBytes pads data to whole blocks and encrypts every block.
func (c *Cipher) EncryptBytes(data []byte) []byte {
	return joinStates(c.EncryptBlocks(ToBlocks(data)))
}

// DecryptBytes decrypts whole-block ciphertext and strips the NUL padding.
func (c *Cipher) DecryptBytes(ciphertext []byte) ([]byte, error) {
	states, err := StatesFromBytes(ciphertext)
	if err != nil {
		return nil, err
	}
	return FromBlocks(c.DecryptBlocks(states)), nil
}
