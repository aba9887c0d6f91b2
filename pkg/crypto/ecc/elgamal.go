package ecc

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Davincible/cryptobench/pkg/crypto/numeric"
)

type PublicKey struct {
	Curve *Curve `json:"-"`
	Q     Point  `json:"q"`
}

type PrivateKey struct {
	PublicKey
	D *big.Int `json:"d"`
}

// Ciphertext is the pair (C1, C2): C1 = kG and C2[i] = m[i] + (kQ).x.
type Ciphertext struct {
	C1 Point      `json:"c1"`
	C2 []*big.Int `json:"c2"`
}

// NewPublicKey validates (x, y) against curve.
func NewPublicKey(curve *Curve, x, y *big.Int) (*PublicKey, error) {
	q := Point{X: x, Y: y}
	if q.IsInfinity() {
		return nil, ErrPointAtInfinity
	}
	if !curve.IsOnCurve(q) {
		return nil, fmt.Errorf("%w: %s on %s", ErrNotOnCurve, q, curve.Name)
	}
	return &PublicKey{Curve: curve, Q: q}, nil
}

// NewPrivateKey rebuilds a key pair from the secret scalar d.
func NewPrivateKey(curve *Curve, d *big.Int) (*PrivateKey, error) {
	if d.Sign() <= 0 {
		return nil, fmt.Errorf("private scalar must be positive")
	}
	q := curve.ScalarBaseMult(d)
	if q.IsInfinity() {
		return nil, fmt.Errorf("%w: d*G", ErrPointAtInfinity)
	}
	return &PrivateKey{
		PublicKey: PublicKey{Curve: curve, Q: q},
		D:         new(big.Int).Set(d),
	}, nil
}

// GenerateKey picks d uniformly from [1, N-1] (or [1, P-1] when the order is
// not known) and returns the pair (d, dG).
func GenerateKey(curve *Curve) (*PrivateKey, error) {
	for {
		d, err := numeric.RandomInRange(big.NewInt(1), curve.scalarBound())
		if err != nil {
			return nil, fmt.Errorf("failed to generate private key: %w", err)
		}

		key, err := NewPrivateKey(curve, d)
		if errors.Is(err, ErrPointAtInfinity) {
			continue
		}
		return key, err
	}
}

// Encrypt masks every byte of msg with the x coordinate of k*Q for a fresh random k.
func Encrypt(pub *PublicKey, msg []byte) (*Ciphertext, error) {
	if pub == nil || pub.Curve == nil || pub.Q.IsInfinity() {
		return nil, fmt.Errorf("public key is incomplete")
	}
	curve := pub.Curve

	for {
		k, err := numeric.RandomInRange(big.NewInt(1), curve.scalarBound())
		if err != nil {
			return nil, fmt.Errorf("failed to generate ephemeral scalar: %w", err)
		}

		c1 := curve.ScalarBaseMult(k)
		shared := curve.ScalarMult(k, pub.Q)
		if c1.IsInfinity() || shared.IsInfinity() {
			continue
		}

		c2 := make([]*big.Int, len(msg))
		for i, b := range msg {
			c2[i] = new(big.Int).Add(big.NewInt(int64(b)), shared.X)
		}
		return &Ciphertext{C1: c1, C2: c2}, nil
	}
}

// Decrypt recovers the shared point as d*C1 and removes its x coordinate from each value.
func Decrypt(priv *PrivateKey, ct *Ciphertext) ([]byte, error) {
	if priv == nil || priv.Curve == nil || priv.D == nil {
		return nil, fmt.Errorf("private key is incomplete")
	}
	if ct == nil {
		return nil, fmt.Errorf("%w: nil ciphertext", ErrInvalidCiphertext)
	}
	if ct.C1.IsInfinity() {
		return nil, fmt.Errorf("%w: C1", ErrPointAtInfinity)
	}
	if !priv.Curve.IsOnCurve(ct.C1) {
		return nil, fmt.Errorf("%w: C1 %s", ErrNotOnCurve, ct.C1)
	}

	shared := priv.Curve.ScalarMult(priv.D, ct.C1)
	if shared.IsInfinity() {
		return nil, fmt.Errorf("%w: d*C1", ErrPointAtInfinity)
	}

	out := make([]byte, len(ct.C2))
	m := new(big.Int)
	for i, c := range ct.C2 {
		if c == nil {
			return nil, fmt.Errorf("%w: missing value at %d", ErrInvalidCiphertext, i)
		}
		m.Sub(c, shared.X)
		if m.Sign() < 0 || m.Cmp(big.NewInt(0xFF)) > 0 {
			return nil, fmt.Errorf("%w: value at %d does not decode to a byte", ErrInvalidCiphertext, i)
		}
		out[i] = byte(m.Int64())
	}
	return out, nil
}
