package aes

import "fmt"

// RoundKey is one 4-word slice of the expanded key, laid out like State.
type RoundKey [Nb][4]byte

// Schedule is the expanded key: Nr+1 round keys derived once per key.
// It is never modified after ExpandKey returns and may be shared freely.
type Schedule struct {
	size KeySize
	keys []RoundKey
}

// ExpandKey derives the round key schedule for key under the given size.
func ExpandKey(key []byte, size KeySize) (*Schedule, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	if len(key) != size.Bytes() {
		return nil, fmt.Errorf("%w: %s requires %d bytes, got %d",
			ErrInvalidKeyLength, size, size.Bytes(), len(key))
	}

	nk := size.Nk()
	nr := size.Rounds()
	total := Nb * (nr + 1)

	words := make([][4]byte, total)
	for i := 0; i < nk; i++ {
		copy(words[i][:], key[4*i:4*i+4])
	}

	for i := nk; i < total; i++ {
		temp := words[i-1]
		switch {
		case i%nk == 0:
			temp = subWord(rotWord(temp))
			temp[0] ^= rcon[i/nk-1]
		case nk > 6 && i%nk == 4:
			temp = subWord(temp)
		}
		for j := 0; j < 4; j++ {
			words[i][j] = words[i-nk][j] ^ temp[j]
		}
	}

	keys := make([]RoundKey, nr+1)
	for round := range keys {
		for c := 0; c < Nb; c++ {
			keys[round][c] = words[round*Nb+c]
		}
	}

	return &Schedule{size: size, keys: keys}, nil
}

// KeySize returns the variant the schedule was derived for.
func (s *Schedule) KeySize() KeySize {
	return s.size
}

// Rounds returns Nr.
func (s *Schedule) Rounds() int {
	return len(s.keys) - 1
}

// Len returns the number of round keys, always Nr+1.
func (s *Schedule) Len() int {
	return len(s.keys)
}

// RoundKey returns the key for round i, 0 <= i <= Nr.
func (s *Schedule) RoundKey(i int) RoundKey {
	return s.keys[i]
}

func rotWord(w [4]byte) [4]byte {
	return [4]byte{w[1], w[2], w[3], w[0]}
}

func subWord(w [4]byte) [4]byte {
	for i := range w {
		w[i] = sBox[w[i]]
	}
	return w
}
