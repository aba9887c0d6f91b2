package bench

import (
	"time"

	"github.com/Davincible/cryptobench/pkg/crypto/ecc"
	"github.com/Davincible/cryptobench/pkg/encoding"
	"github.com/Davincible/cryptobench/pkg/secure"
)

// RunECC picks the named curve for bits and times key generation and
// per-byte encryption and decryption of plaintext.
func (r *Runner) RunECC(plaintext []byte, bits int) (Result, error) {
	curve, err := ecc.CurveForBits(bits)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	key, err := ecc.GenerateKey(curve)
	if err != nil {
		return Result{}, err
	}
	keygen := time.Since(start)

	start = time.Now()
	ct, err := ecc.Encrypt(&key.PublicKey, plaintext)
	if err != nil {
		return Result{}, err
	}
	c2Text := encoding.FormatBigInts(ct.C2)
	encrypt := time.Since(start)

	start = time.Now()
	c2, err := encoding.ParseBigInts(c2Text)
	if err != nil {
		return Result{}, err
	}
	decrypted, err := ecc.Decrypt(key, &ecc.Ciphertext{C1: ct.C1, C2: c2})
	if err != nil {
		return Result{}, err
	}
	decrypt := time.Since(start)

	enc := &report{}
	enc.field("d", key.D.String())
	enc.field("C1", ct.C1.String())
	enc.field("C2", c2Text)
	enc.timing("Key Generation Time", keygen)
	enc.timing("Encryption Time", encrypt)

	dec := &report{}
	dec.field("P", string(decrypted))
	dec.timing("Decryption Time", decrypt)

	res := Result{
		Algorithm:        AlgorithmECC,
		Bits:             bits,
		Curve:            curve.Name,
		KeyGen:           keygen,
		Encrypt:          encrypt,
		Decrypt:          decrypt,
		PlaintextLen:     len(plaintext),
		CiphertextLen:    len(ct.C2),
		CiphertextDigest: encoding.Digest([]byte(ct.C1.String() + " " + c2Text)),
		RoundTrip:        secure.Equal(decrypted, plaintext),
	}

	return r.finish(res, enc, dec)
}
