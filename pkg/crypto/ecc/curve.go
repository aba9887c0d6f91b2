// Package ecc implements affine arithmetic on short Weierstrass curves
// y^2 = x^3 + ax + b over GF(p), and an ElGamal-style scheme that masks each
// message byte with the x coordinate of a shared point.
//
// The arithmetic is textbook and variable time.
package ecc

import (
	"crypto/elliptic"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/Davincible/cryptobench/pkg/crypto/numeric"
)

var (
	ErrUnknownCurve      = errors.New("unknown curve")
	ErrNotOnCurve        = errors.New("point is not on the curve")
	ErrPointAtInfinity   = errors.New("point at infinity")
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

// Point is an affine point. The zero value is the point at infinity.
type Point struct {
	X *big.Int `json:"x"`
	Y *big.Int `json:"y"`
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.X == nil || p.Y == nil
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

func (p Point) String() string {
	if p.IsInfinity() {
		return "(inf)"
	}
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}

// Curve holds the domain parameters of a short Weierstrass curve.
// N is the order of G and may be nil when it is not known.
type Curve struct {
	Name string
	Bits int
	P    *big.Int
	A    *big.Int
	B    *big.Int
	G    Point
	N    *big.Int
}

func hexInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("ecc: bad curve constant " + s)
	}
	return n
}

func minusThree(p *big.Int) *big.Int {
	return new(big.Int).Sub(p, big.NewInt(3))
}

// Secp128r1 is the SEC 2 128-bit prime curve.
func Secp128r1() *Curve {
	p := hexInt("fffffffdffffffffffffffffffffffff")
	return &Curve{
		Name: "secp128r1",
		Bits: 128,
		P:    p,
		A:    minusThree(p),
		B:    hexInt("e87579c11079f43dd824993c2cee5ed3"),
		G: Point{
			X: hexInt("161ff7528b899b2d0c28607ca52c5b86"),
			Y: hexInt("cf5ac8395bafeb13c02da292dded7a83"),
		},
		N: hexInt("fffffffe0000000075a30d1b9038a115"),
	}
}

// P192 is the NIST P-192 curve.
func P192() *Curve {
	p := hexInt("fffffffffffffffffffffffffffffffeffffffffffffffff")
	return &Curve{
		Name: "P-192",
		Bits: 192,
		P:    p,
		A:    minusThree(p),
		B:    hexInt("64210519e59c80e70fa7e9ab72243049feb8deecc146b9b1"),
		G: Point{
			X: hexInt("188da80eb03090f67cbf20eb43a18800f4ff0afd82ff1012"),
			Y: hexInt("07192b95ffc8da78631011ed6b24cdd573f977a11e794811"),
		},
		N: hexInt("ffffffffffffffffffffffff99def836146bc9b1b4d22831"),
	}
}

// P256 is the NIST P-256 curve with parameters taken from crypto/elliptic.
func P256() *Curve {
	params := elliptic.P256().Params()
	return &Curve{
		Name: params.Name,
		Bits: params.BitSize,
		P:    new(big.Int).Set(params.P),
		A:    minusThree(params.P),
		B:    new(big.Int).Set(params.B),
		G: Point{
			X: new(big.Int).Set(params.Gx),
			Y: new(big.Int).Set(params.Gy),
		},
		N: new(big.Int).Set(params.N),
	}
}

var curves = map[string]func() *Curve{
	"secp128r1": Secp128r1,
	"p-192":     P192,
	"p-256":     P256,
}

var curvesByBits = map[int]func() *Curve{
	128: Secp128r1,
	192: P192,
	256: P256,
}

// CurveByName looks a curve up by name, case-insensitively ("P-256", "p256").
func CurveByName(name string) (*Curve, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if fn, ok := curves[key]; ok {
		return fn(), nil
	}
	if strings.HasPrefix(key, "p") && !strings.HasPrefix(key, "p-") {
		if fn, ok := curves["p-"+key[1:]]; ok {
			return fn(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownCurve, name, strings.Join(CurveNames(), ", "))
}

// CurveForBits returns the curve used for a given security size: 128, 192 or 256.
func CurveForBits(bits int) (*Curve, error) {
	fn, ok := curvesByBits[bits]
	if !ok {
		return nil, fmt.Errorf("%w: no curve for %d bits", ErrUnknownCurve, bits)
	}
	return fn(), nil
}

// CurveNames lists the supported curve names.
func CurveNames() []string {
	names := make([]string, 0, len(curvesByBits))
	for _, fn := range curvesByBits {
		names = append(names, fn().Name)
	}
	sort.Strings(names)
	return names
}

// IsOnCurve reports whether pt satisfies the curve equation. The point at
// infinity is on every curve.
func (c *Curve) IsOnCurve(pt Point) bool {
	if pt.IsInfinity() {
		return true
	}
	if pt.X.Sign() < 0 || pt.X.Cmp(c.P) >= 0 || pt.Y.Sign() < 0 || pt.Y.Cmp(c.P) >= 0 {
		return false
	}

	lhs := new(big.Int).Mul(pt.Y, pt.Y)
	lhs.Mod(lhs, c.P)

	rhs := new(big.Int).Mul(pt.X, pt.X)
	rhs.Mul(rhs, pt.X)
	ax := new(big.Int).Mul(c.A, pt.X)
	rhs.Add(rhs, ax)
	rhs.Add(rhs, c.B)
	rhs.Mod(rhs, c.P)

	return lhs.Cmp(rhs) == 0
}

// Neg returns -pt.
func (c *Curve) Neg(pt Point) Point {
	if pt.IsInfinity() {
		return Point{}
	}
	y := new(big.Int).Neg(pt.Y)
	return Point{X: new(big.Int).Set(pt.X), Y: y.Mod(y, c.P)}
}

// Add returns p + q.
func (c *Curve) Add(p, q Point) Point {
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}

	if p.X.Cmp(q.X) == 0 {
		sum := new(big.Int).Add(p.Y, q.Y)
		if sum.Mod(sum, c.P).Sign() == 0 {
			return Point{}
		}
		return c.Double(p)
	}

	// m = (y2 - y1) / (x2 - x1)
	num := new(big.Int).Sub(q.Y, p.Y)
	den := new(big.Int).Sub(q.X, p.X)
	inv, err := numeric.ModInverse(den, c.P)
	if err != nil {
		// x1 != x2 mod a prime, so den is always invertible.
		panic(fmt.Sprintf("ecc: %v", err))
	}
	m := num.Mul(num, inv)
	m.Mod(m, c.P)

	return c.fromSlope(m, p, q.X)
}

// Double returns 2p.
func (c *Curve) Double(p Point) Point {
	if p.IsInfinity() || p.Y.Sign() == 0 {
		return Point{}
	}

	// m = (3x^2 + a) / 2y
	num := new(big.Int).Mul(p.X, p.X)
	num.Mul(num, big.NewInt(3))
	num.Add(num, c.A)
	den := new(big.Int).Lsh(p.Y, 1)
	inv, err := numeric.ModInverse(den, c.P)
	if err != nil {
		panic(fmt.Sprintf("ecc: %v", err))
	}
	m := num.Mul(num, inv)
	m.Mod(m, c.P)

	return c.fromSlope(m, p, p.X)
}

// fromSlope finishes an addition given the slope m through p and a point with x coordinate x2.
func (c *Curve) fromSlope(m *big.Int, p Point, x2 *big.Int) Point {
	x3 := new(big.Int).Mul(m, m)
	x3.Sub(x3, p.X)
	x3.Sub(x3, x2)
	x3.Mod(x3, c.P)

	y3 := new(big.Int).Sub(p.X, x3)
	y3.Mul(y3, m)
	y3.Sub(y3, p.Y)
	y3.Mod(y3, c.P)

	return Point{X: x3, Y: y3}
}

// ScalarMult returns k*p using double-and-add from the least significant bit.
func (c *Curve) ScalarMult(k *big.Int, p Point) Point {
	if k.Sign() == 0 || p.IsInfinity() {
		return Point{}
	}
	if k.Sign() < 0 {
		return c.ScalarMult(new(big.Int).Neg(k), c.Neg(p))
	}

	var result Point
	addend := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = c.Add(result, addend)
		}
		addend = c.Double(addend)
	}
	return result
}

// ScalarBaseMult returns k*G.
func (c *Curve) ScalarBaseMult(k *big.Int) Point {
	return c.ScalarMult(k, c.G)
}

// scalarBound is the largest scalar drawn for keys and ephemeral values.
func (c *Curve) scalarBound() *big.Int {
	if c.N != nil {
		return new(big.Int).Sub(c.N, big.NewInt(1))
	}
	return new(big.Int).Sub(c.P, big.NewInt(1))
}
