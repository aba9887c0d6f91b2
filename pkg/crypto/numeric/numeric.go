// Package numeric holds the big integer routines shared by the RSA and ECC
// packages: modular exponentiation, modular inverse and probabilistic prime
// generation.
package numeric

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// DefaultRounds is the number of Miller-Rabin rounds used when generating primes.
const DefaultRounds = 20

// ErrNotInvertible is returned when a has no inverse modulo m.
var ErrNotInvertible = errors.New("value is not invertible")

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// ModExp returns base^exp mod m using right-to-left square and multiply.
// exp must be non-negative and m positive.
func ModExp(base, exp, m *big.Int) *big.Int {
	if m.Cmp(one) == 0 {
		return new(big.Int)
	}

	result := big.NewInt(1)
	b := new(big.Int).Mod(base, m)
	e := new(big.Int).Set(exp)

	for e.Sign() > 0 {
		if e.Bit(0) == 1 {
			result.Mul(result, b)
			result.Mod(result, m)
		}
		b.Mul(b, b)
		b.Mod(b, m)
		e.Rsh(e, 1)
	}
	return result
}

// ModInverse returns x in [0, m) with a*x = 1 (mod m), computed with the
// extended Euclidean algorithm.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, fmt.Errorf("modulus must be positive, got %s", m)
	}

	oldR, r := new(big.Int).Mod(a, m), new(big.Int).Set(m)
	oldS, s := big.NewInt(1), big.NewInt(0)

	for r.Sign() != 0 {
		q := new(big.Int).Div(oldR, r)
		oldR, r = r, new(big.Int).Sub(oldR, new(big.Int).Mul(q, r))
		oldS, s = s, new(big.Int).Sub(oldS, new(big.Int).Mul(q, s))
	}

	if oldR.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: gcd(%s, %s) = %s", ErrNotInvertible, a, m, oldR)
	}
	return oldS.Mod(oldS, m), nil
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	for y.Sign() != 0 {
		x, y = y, new(big.Int).Mod(x, y)
	}
	return x
}

// RandomInRange returns a uniformly random integer in [lo, hi].
func RandomInRange(lo, hi *big.Int) (*big.Int, error) {
	if lo.Cmp(hi) > 0 {
		return nil, fmt.Errorf("empty range [%s, %s]", lo, hi)
	}

	span := new(big.Int).Sub(hi, lo)
	span.Add(span, one)

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random integer: %w", err)
	}
	return n.Add(n, lo), nil
}
