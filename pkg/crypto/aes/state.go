package aes

import "fmt"

// State is the 4x4 byte matrix a block passes through, stored column-major:
// s[c][r] is row r of column c, and s[c] is the c-th 32-bit word of the block.
//
// State is a value type. Every transform takes a State and returns a new one,
// so a State is never shared between concurrent block operations.
type State [Nb][4]byte

// NewState loads a 16-byte block into a State.
func NewState(block []byte) (State, error) {
	if len(block) != BlockSize {
		return State{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidBlockLength, BlockSize, len(block))
	}
	return stateFrom([BlockSize]byte(block)), nil
}

func stateFrom(block [BlockSize]byte) State {
	var s State
	for c := 0; c < Nb; c++ {
		copy(s[c][:], block[4*c:4*c+4])
	}
	return s
}

// Bytes returns the block held by s in input order.
func (s State) Bytes() []byte {
	out := make([]byte, BlockSize)
	s.put(out)
	return out
}

func (s State) put(dst []byte) {
	for c := 0; c < Nb; c++ {
		copy(dst[4*c:], s[c][:])
	}
}

// Row returns row r of the state.
func (s State) Row(r int) [4]byte {
	return [4]byte{s[0][r], s[1][r], s[2][r], s[3][r]}
}

func (s *State) setRow(r int, row [4]byte) {
	for c := 0; c < Nb; c++ {
		s[c][r] = row[c]
	}
}
