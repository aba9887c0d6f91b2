package aes

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Vector is a known-answer test case.
type Vector struct {
	Name       string
	Size       KeySize
	Key        string
	Plaintext  string
	Ciphertext string
}

// KnownAnswerTests returns the FIPS-197 Appendix C examples plus the all-zero
// key and block for AES-128.
func KnownAnswerTests() []Vector {
	return []Vector{
		{
			Name:       "zero key, zero block",
			Size:       AES128,
			Key:        "00000000000000000000000000000000",
			Plaintext:  "00000000000000000000000000000000",
			Ciphertext: "66e94bd4ef8a2c3b884cfa59ca342b2e",
		},
		{
			Name:       "FIPS-197 appendix B",
			Size:       AES128,
			Key:        "2b7e151628aed2a6abf7158809cf4f3c",
			Plaintext:  "3243f6a8885a308d313198a2e0370734",
			Ciphertext: "3925841d02dc09fbdc118597196a0b32",
		},
		{
			Name:       "FIPS-197 C.1",
			Size:       AES128,
			Key:        "000102030405060708090a0b0c0d0e0f",
			Plaintext:  "00112233445566778899aabbccddeeff",
			Ciphertext: "69c4e0d86a7b0430d8cdb78070b4c55a",
		},
		{
			Name:       "FIPS-197 C.2",
			Size:       AES192,
			Key:        "000102030405060708090a0b0c0d0e0f1011121314151617",
			Plaintext:  "00112233445566778899aabbccddeeff",
			Ciphertext: "dda97ca4864cdfe06eaf70a0ec0d7191",
		},
		{
			Name:       "FIPS-197 C.3",
			Size:       AES256,
			Key:        "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
			Plaintext:  "00112233445566778899aabbccddeeff",
			Ciphertext: "8ea2b7ca516745bfeafc49904b496089",
		},
	}
}

// Check runs v in both directions.
func (v Vector) Check() error {
	key, err := hex.DecodeString(v.Key)
	if err != nil {
		return fmt.Errorf("%s: bad key: %w", v.Name, err)
	}
	pt, err := hex.DecodeString(v.Plaintext)
	if err != nil {
		return fmt.Errorf("%s: bad plaintext: %w", v.Name, err)
	}
	want, err := hex.DecodeString(v.Ciphertext)
	if err != nil {
		return fmt.Errorf("%s: bad ciphertext: %w", v.Name, err)
	}

	c, err := NewCipher(key, v.Size)
	if err != nil {
		return fmt.Errorf("%s: %w", v.Name, err)
	}

	got, err := c.EncryptBlock(pt)
	if err != nil {
		return fmt.Errorf("%s: %w", v.Name, err)
	}
	if !bytes.Equal(got, want) {
		return fmt.Errorf("%s: encrypt: got %x, want %x", v.Name, got, want)
	}

	back, err := c.DecryptBlock(got)
	if err != nil {
		return fmt.Errorf("%s: %w", v.Name, err)
	}
	if !bytes.Equal(back, pt) {
		return fmt.Errorf("%s: decrypt: got %x, want %x", v.Name, back, pt)
	}
	return nil
}

// SelfTest runs every known-answer test and returns the first failure.
func SelfTest() error {
	for _, v := range KnownAnswerTests() {
		if err := v.Check(); err != nil {
			return err
		}
	}
	return nil
}
