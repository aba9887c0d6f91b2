package bench

import (
	"time"

	"github.com/Davincible/cryptobench/pkg/crypto/rsa"
	"github.com/Davincible/cryptobench/pkg/encoding"
	"github.com/Davincible/cryptobench/pkg/secure"
)

// RunRSA generates a textbook RSA key with a modulus of bits and times
// per-byte encryption and decryption of plaintext.
func (r *Runner) RunRSA(plaintext []byte, bits int) (Result, error) {
	start := time.Now()
	key, err := rsa.GenerateKeyWithRounds(bits, r.opts.PrimalityRounds)
	if err != nil {
		return Result{}, err
	}
	keygen := time.Since(start)

	start = time.Now()
	ct, err := rsa.Encrypt(&key.PublicKey, plaintext)
	if err != nil {
		return Result{}, err
	}
	ciphertextText := encoding.FormatBigInts(ct)
	encrypt := time.Since(start)

	start = time.Now()
	parsed, err := encoding.ParseBigInts(ciphertextText)
	if err != nil {
		return Result{}, err
	}
	decrypted, err := rsa.Decrypt(key, parsed)
	if err != nil {
		return Result{}, err
	}
	decrypt := time.Since(start)

	enc := &report{}
	enc.field("C", ciphertextText)
	enc.field("d", key.D.String())
	enc.timing("Key Generation Time", keygen)
	enc.timing("Encryption Time", encrypt)

	dec := &report{}
	dec.field("P", string(decrypted))
	dec.timing("Decryption Time", decrypt)

	res := Result{
		Algorithm:        AlgorithmRSA,
		Bits:             bits,
		KeyGen:           keygen,
		Encrypt:          encrypt,
		Decrypt:          decrypt,
		PlaintextLen:     len(plaintext),
		CiphertextLen:    len(ct),
		CiphertextDigest: encoding.Digest([]byte(ciphertextText)),
		RoundTrip:        secure.Equal(decrypted, plaintext),
	}

	return r.finish(res, enc, dec)
}
