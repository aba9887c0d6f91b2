package ecc

import (
	"crypto/elliptic"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allCurves() []*Curve {
	return []*Curve{Secp128r1(), P192(), P256()}
}

func TestGeneratorOnCurve(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name, func(t *testing.T) {
			assert.True(t, c.IsOnCurve(c.G))
			assert.False(t, c.IsOnCurve(Point{X: c.G.X, Y: new(big.Int).Add(c.G.Y, big.NewInt(1))}))
			assert.Equal(t, c.Bits, c.P.BitLen())
		})
	}
}

func TestOrderTimesGeneratorIsInfinity(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name, func(t *testing.T) {
			assert.True(t, c.ScalarBaseMult(c.N).IsInfinity())

			nMinus1 := new(big.Int).Sub(c.N, big.NewInt(1))
			assert.True(t, c.ScalarBaseMult(nMinus1).Equal(c.Neg(c.G)))
		})
	}
}

func TestGroupLaws(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name, func(t *testing.T) {
			g := c.G
			inf := Point{}

			assert.True(t, c.Add(g, inf).Equal(g))
			assert.True(t, c.Add(inf, g).Equal(g))
			assert.True(t, c.Add(g, c.Neg(g)).IsInfinity())
			assert.True(t, c.Add(g, g).Equal(c.Double(g)))

			g2 := c.Double(g)
			g3 := c.Add(g2, g)
			assert.True(t, c.IsOnCurve(g2))
			assert.True(t, c.IsOnCurve(g3))
			assert.True(t, g3.Equal(c.ScalarBaseMult(big.NewInt(3))))
			assert.True(t, c.Add(g3, g2).Equal(c.Add(g2, g3)))

			a := big.NewInt(123456789)
			b := big.NewInt(987654321)
			sum := new(big.Int).Add(a, b)
			assert.True(t, c.ScalarBaseMult(sum).Equal(c.Add(c.ScalarBaseMult(a), c.ScalarBaseMult(b))))

			assert.True(t, c.ScalarBaseMult(big.NewInt(0)).IsInfinity())
			assert.True(t, c.ScalarBaseMult(big.NewInt(-3)).Equal(c.Neg(g3)))
		})
	}
}

func TestScalarMultMatchesStandardLibrary(t *testing.T) {
	c := P256()
	ref := elliptic.P256()

	for _, k := range []int64{1, 2, 7, 65537, 1 << 40} {
		x, y := ref.ScalarBaseMult(big.NewInt(k).Bytes())
		got := c.ScalarBaseMult(big.NewInt(k))
		assert.Equal(t, 0, x.Cmp(got.X), "k=%d", k)
		assert.Equal(t, 0, y.Cmp(got.Y), "k=%d", k)
	}
}

func TestCurveLookup(t *testing.T) {
	for _, name := range []string{"P-256", "p256", "p-192", "P192", "secp128r1"} {
		c, err := CurveByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, c)
	}

	_, err := CurveByName("curve25519")
	assert.ErrorIs(t, err, ErrUnknownCurve)

	for _, bits := range []int{128, 192, 256} {
		c, err := CurveForBits(bits)
		require.NoError(t, err)
		assert.Equal(t, bits, c.Bits)
	}

	_, err = CurveForBits(384)
	assert.ErrorIs(t, err, ErrUnknownCurve)

	assert.Equal(t, []string{"P-192", "P-256", "secp128r1"}, CurveNames())
}

func TestRoundTrip(t *testing.T) {
	msg := []byte("elliptic curves \x00\x01\xfe\xff")
	for _, c := range allCurves() {
		t.Run(c.Name, func(t *testing.T) {
			key, err := GenerateKey(c)
			require.NoError(t, err)
			assert.True(t, c.IsOnCurve(key.Q))
			assert.Equal(t, -1, key.D.Cmp(c.N))

			ct, err := Encrypt(&key.PublicKey, msg)
			require.NoError(t, err)
			assert.Len(t, ct.C2, len(msg))
			assert.True(t, c.IsOnCurve(ct.C1))

			pt, err := Decrypt(key, ct)
			require.NoError(t, err)
			assert.Equal(t, msg, pt)
		})
	}
}

func TestDecryptWrongKey(t *testing.T) {
	c := P192()
	alice, err := GenerateKey(c)
	require.NoError(t, err)
	bob, err := GenerateKey(c)
	require.NoError(t, err)

	ct, err := Encrypt(&alice.PublicKey, []byte("for alice only"))
	require.NoError(t, err)

	_, err = Decrypt(bob, ct)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestDecryptRejectsBadC1(t *testing.T) {
	c := P256()
	key, err := GenerateKey(c)
	require.NoError(t, err)

	_, err = Decrypt(key, &Ciphertext{})
	assert.ErrorIs(t, err, ErrPointAtInfinity)

	_, err = Decrypt(key, &Ciphertext{C1: Point{X: big.NewInt(1), Y: big.NewInt(1)}})
	assert.ErrorIs(t, err, ErrNotOnCurve)
}

func TestNewPublicKey(t *testing.T) {
	c := Secp128r1()
	key, err := GenerateKey(c)
	require.NoError(t, err)

	pub, err := NewPublicKey(c, key.Q.X, key.Q.Y)
	require.NoError(t, err)
	assert.True(t, pub.Q.Equal(key.Q))

	_, err = NewPublicKey(c, key.Q.X, new(big.Int).Add(key.Q.Y, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrNotOnCurve)

	_, err = NewPublicKey(c, nil, nil)
	assert.ErrorIs(t, err, ErrPointAtInfinity)
}

func TestGenerateKeyWithoutOrder(t *testing.T) {
	c := Secp128r1()
	c.N = nil
	assert.Equal(t, 0, c.scalarBound().Cmp(new(big.Int).Sub(c.P, big.NewInt(1))))

	key, err := GenerateKey(c)
	require.NoError(t, err)
	assert.True(t, c.IsOnCurve(key.Q))
}

func TestNewPrivateKey(t *testing.T) {
	c := P192()
	key, err := NewPrivateKey(c, big.NewInt(42))
	require.NoError(t, err)
	assert.True(t, key.Q.Equal(c.ScalarBaseMult(big.NewInt(42))))

	_, err = NewPrivateKey(c, big.NewInt(0))
	assert.Error(t, err)
}

func BenchmarkScalarBaseMult(b *testing.B) {
	for _, c := range allCurves() {
		b.Run(c.Name, func(b *testing.B) {
			k := new(big.Int).Sub(c.P, big.NewInt(12345))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c.ScalarBaseMult(k)
			}
		})
	}
}
