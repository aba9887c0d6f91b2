// Package rsa implements textbook RSA: no padding, one modular exponentiation
// per message byte. It is meant for timing comparisons, not for protecting data.
package rsa

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Davincible/cryptobench/pkg/crypto/numeric"
)

// MinBits is the smallest modulus that still exceeds every byte value.
const MinBits = 16

// DefaultExponent is the public exponent used for every key.
const DefaultExponent = 65537

var (
	// ErrMessageTooLarge is returned when a decrypted value does not fit in a byte,
	// which means the ciphertext was produced under a different key.
	ErrMessageTooLarge = errors.New("decrypted value out of byte range")

	// ErrInvalidCiphertext is returned for ciphertext values outside [0, n).
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

type PublicKey struct {
	N *big.Int `json:"n"`
	E *big.Int `json:"e"`
}

type PrivateKey struct {
	PublicKey
	D *big.Int `json:"d"`
	P *big.Int `json:"-"`
	Q *big.Int `json:"-"`
}

// Bits returns the size of the modulus.
func (k *PublicKey) Bits() int {
	return k.N.BitLen()
}

// GenerateKey builds a key pair whose primes are bits/2 bits each.
func GenerateKey(bits int) (*PrivateKey, error) {
	return GenerateKeyWithRounds(bits, numeric.DefaultRounds)
}

// GenerateKeyWithRounds is GenerateKey with a caller-chosen Miller-Rabin round count.
func GenerateKeyWithRounds(bits, rounds int) (*PrivateKey, error) {
	if bits < MinBits {
		return nil, fmt.Errorf("key size must be at least %d bits, got %d", MinBits, bits)
	}

	e := big.NewInt(DefaultExponent)
	one := big.NewInt(1)

	for {
		p, err := numeric.GeneratePrimeWithRounds(bits/2, rounds)
		if err != nil {
			return nil, fmt.Errorf("failed to generate p: %w", err)
		}
		q, err := numeric.GeneratePrimeWithRounds(bits-bits/2, rounds)
		if err != nil {
			return nil, fmt.Errorf("failed to generate q: %w", err)
		}
		if p.Cmp(q) == 0 {
			continue
		}

		n := new(big.Int).Mul(p, q)
		if n.BitLen() != bits {
			continue
		}

		phi := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
		if numeric.GCD(e, phi).Cmp(one) != 0 {
			continue
		}
		d, err := numeric.ModInverse(e, phi)
		if err != nil {
			return nil, fmt.Errorf("failed to derive private exponent: %w", err)
		}

		return &PrivateKey{
			PublicKey: PublicKey{
				N: n,
				E: e,
			},
			D: d,
			P: p,
			Q: q,
		}, nil
	}
}

// Encrypt raises every byte of msg to e modulo n.
func Encrypt(pub *PublicKey, msg []byte) ([]*big.Int, error) {
	if pub == nil || pub.N == nil || pub.E == nil {
		return nil, fmt.Errorf("public key is incomplete")
	}
	if pub.N.Cmp(big.NewInt(0xFF)) <= 0 {
		return nil, fmt.Errorf("modulus %s is too small to encrypt bytes", pub.N)
	}

	out := make([]*big.Int, len(msg))
	for i, b := range msg {
		out[i] = numeric.ModExp(big.NewInt(int64(b)), pub.E, pub.N)
	}
	return out, nil
}

// Decrypt reverses Encrypt.
func Decrypt(priv *PrivateKey, ciphertext []*big.Int) ([]byte, error) {
	if priv == nil || priv.N == nil || priv.D == nil {
		return nil, fmt.Errorf("private key is incomplete")
	}

	out := make([]byte, len(ciphertext))
	for i, c := range ciphertext {
		if c == nil || c.Sign() < 0 || c.Cmp(priv.N) >= 0 {
			return nil, fmt.Errorf("%w: value %d is outside [0, n)", ErrInvalidCiphertext, i)
		}

		m := numeric.ModExp(c, priv.D, priv.N)
		if !m.IsInt64() || m.Int64() > 0xFF {
			return nil, fmt.Errorf("%w: position %d", ErrMessageTooLarge, i)
		}
		out[i] = byte(m.Int64())
	}
	return out, nil
}
