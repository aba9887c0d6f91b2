package numeric

import (
	"fmt"
	"math/big"
)

var smallPrimes = []int64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

// IsProbablePrime runs rounds iterations of Miller-Rabin with random bases.
// A composite passes with probability at most 4^-rounds.
func IsProbablePrime(n *big.Int, rounds int) bool {
	if n.Cmp(two) < 0 {
		return false
	}
	if n.Cmp(big.NewInt(3)) <= 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}
	for _, p := range smallPrimes {
		bp := big.NewInt(p)
		if n.Cmp(bp) == 0 {
			return true
		}
		if new(big.Int).Mod(n, bp).Sign() == 0 {
			return false
		}
	}

	if rounds < 1 {
		rounds = 1
	}

	// n - 1 = d * 2^r with d odd
	nMinus1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinus1)
	r := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	hi := new(big.Int).Sub(n, two)
	for i := 0; i < rounds; i++ {
		a, err := RandomInRange(two, hi)
		if err != nil {
			return false
		}
		if !millerRabinRound(a, d, n, nMinus1, r) {
			return false
		}
	}
	return true
}

func millerRabinRound(a, d, n, nMinus1 *big.Int, r int) bool {
	x := ModExp(a, d, n)
	if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
		return true
	}
	for i := 0; i < r-1; i++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(nMinus1) == 0 {
			return true
		}
	}
	return false
}

// GeneratePrime returns a probable prime of exactly bits bits.
func GeneratePrime(bits int) (*big.Int, error) {
	return GeneratePrimeWithRounds(bits, DefaultRounds)
}

// GeneratePrimeWithRounds is GeneratePrime with a caller-chosen Miller-Rabin round count.
func GeneratePrimeWithRounds(bits, rounds int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("prime size must be at least 2 bits, got %d", bits)
	}

	lo := new(big.Int).Lsh(one, uint(bits-1))
	hi := new(big.Int).Sub(new(big.Int).Lsh(one, uint(bits)), one)

	for {
		candidate, err := RandomInRange(lo, hi)
		if err != nil {
			return nil, fmt.Errorf("failed to generate prime: %w", err)
		}
		if bits > 2 {
			candidate.SetBit(candidate, 0, 1)
		}
		if IsProbablePrime(candidate, rounds) {
			return candidate, nil
		}
	}
}
