package numeric

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModExp(t *testing.T) {
	tests := []struct {
		base, exp, mod, want int64
	}{
		{4, 13, 497, 445},
		{2, 10, 1000, 24},
		{7, 0, 13, 1},
		{0, 5, 13, 0},
		{5, 3, 1, 0},
		{65, 17, 3233, 2790},
		{2790, 2753, 3233, 65},
	}

	for _, tt := range tests {
		got := ModExp(big.NewInt(tt.base), big.NewInt(tt.exp), big.NewInt(tt.mod))
		assert.Equal(t, tt.want, got.Int64(), "%d^%d mod %d", tt.base, tt.exp, tt.mod)
	}
}

func TestModExpMatchesBigInt(t *testing.T) {
	m, err := GeneratePrime(128)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		base, err := RandomInRange(big.NewInt(0), m)
		require.NoError(t, err)
		exp, err := RandomInRange(big.NewInt(0), m)
		require.NoError(t, err)

		want := new(big.Int).Exp(base, exp, m)
		assert.Equal(t, 0, want.Cmp(ModExp(base, exp, m)))
	}
}

func TestModInverse(t *testing.T) {
	inv, err := ModInverse(big.NewInt(17), big.NewInt(3120))
	require.NoError(t, err)
	assert.Equal(t, int64(2753), inv.Int64())

	inv, err = ModInverse(big.NewInt(3), big.NewInt(11))
	require.NoError(t, err)
	assert.Equal(t, int64(4), inv.Int64())

	// Negative input is reduced first.
	inv, err = ModInverse(big.NewInt(-3), big.NewInt(11))
	require.NoError(t, err)
	assert.Equal(t, int64(7), inv.Int64())

	_, err = ModInverse(big.NewInt(6), big.NewInt(9))
	assert.ErrorIs(t, err, ErrNotInvertible)

	_, err = ModInverse(big.NewInt(0), big.NewInt(7))
	assert.ErrorIs(t, err, ErrNotInvertible)

	_, err = ModInverse(big.NewInt(3), big.NewInt(0))
	assert.Error(t, err)
}

func TestModInverseLaw(t *testing.T) {
	p, err := GeneratePrime(96)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		a, err := RandomInRange(big.NewInt(1), new(big.Int).Sub(p, big.NewInt(1)))
		require.NoError(t, err)

		inv, err := ModInverse(a, p)
		require.NoError(t, err)

		prod := new(big.Int).Mul(a, inv)
		assert.Equal(t, int64(1), prod.Mod(prod, p).Int64())
	}
}

func TestGCD(t *testing.T) {
	assert.Equal(t, int64(6), GCD(big.NewInt(54), big.NewInt(24)).Int64())
	assert.Equal(t, int64(1), GCD(big.NewInt(17), big.NewInt(3120)).Int64())
	assert.Equal(t, int64(5), GCD(big.NewInt(-5), big.NewInt(0)).Int64())
}

func TestIsProbablePrime(t *testing.T) {
	primes := []int64{2, 3, 5, 7, 47, 53, 97, 7919, 104729, 2147483647}
	for _, p := range primes {
		assert.True(t, IsProbablePrime(big.NewInt(p), DefaultRounds), "%d", p)
	}

	composites := []int64{-7, 0, 1, 4, 9, 49, 91, 561, 1105, 1729, 2465, 6601, 8911, 1000000}
	for _, c := range composites {
		assert.False(t, IsProbablePrime(big.NewInt(c), DefaultRounds), "%d", c)
	}

	mersenne, ok := new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	require.True(t, ok)
	assert.True(t, IsProbablePrime(mersenne, DefaultRounds))
	assert.False(t, IsProbablePrime(new(big.Int).Add(mersenne, big.NewInt(2)), DefaultRounds))
}

func TestGeneratePrime(t *testing.T) {
	for _, bits := range []int{8, 16, 64, 128, 256} {
		p, err := GeneratePrime(bits)
		require.NoError(t, err)
		assert.Equal(t, bits, p.BitLen())
		assert.True(t, p.ProbablyPrime(20))
	}

	_, err := GeneratePrime(1)
	assert.Error(t, err)
}

func TestRandomInRange(t *testing.T) {
	lo, hi := big.NewInt(10), big.NewInt(12)
	for i := 0; i < 100; i++ {
		n, err := RandomInRange(lo, hi)
		require.NoError(t, err)
		assert.True(t, n.Cmp(lo) >= 0 && n.Cmp(hi) <= 0)
	}

	_, err := RandomInRange(hi, lo)
	assert.Error(t, err)
}

func BenchmarkGeneratePrime(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := GeneratePrime(256); err != nil {
			b.Fatal(err)
		}
	}
}
