package bench

import (
	"fmt"
	"time"

	"github.com/Davincible/cryptobench/pkg/crypto/aes"
	"github.com/Davincible/cryptobench/pkg/encoding"
	"github.com/Davincible/cryptobench/pkg/secure"
)

// RunAES generates a key of the given size and times block-wise encryption
// and decryption of plaintext. Timings include chunking and text conversion.
func (r *Runner) RunAES(plaintext []byte, bits int) (Result, error) {
	size, err := aes.ParseKeySize(bits)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	key, err := secure.RandomKey(size.Bytes())
	if err != nil {
		return Result{}, err
	}
	defer key.Destroy()

	keyBytes := key.Bytes()
	defer secure.Zero(keyBytes)

	schedule, err := aes.ExpandKey(keyBytes, size)
	if err != nil {
		return Result{}, err
	}
	c := aes.NewCipherFromSchedule(schedule)
	keygen := time.Since(start)

	r.logger.Debug("AES key expanded", "key_size", size.String(), "rounds", schedule.Rounds())

	start = time.Now()
	ciphertext := aes.JoinStates(c.EncryptBlocks(aes.ToBlocks(plaintext)))
	ciphertextText := encoding.FormatByteValues(ciphertext)
	encrypt := time.Since(start)

	start = time.Now()
	values, err := encoding.ParseByteValues(ciphertextText)
	if err != nil {
		return Result{}, err
	}
	states, err := aes.StatesFromValues(values)
	if err != nil {
		return Result{}, err
	}
	decrypted := aes.FromBlocks(c.DecryptBlocks(states))
	decrypt := time.Since(start)

	enc := &report{}
	enc.field("K", encoding.FormatKeyHex(keyBytes))
	enc.field("C", ciphertextText)
	enc.timing("Encryption Time", encrypt)

	dec := &report{}
	dec.field("P", string(decrypted))
	dec.timing("Decryption Time", decrypt)

	res := Result{
		Algorithm:        AlgorithmAES,
		Bits:             bits,
		KeyGen:           keygen,
		Encrypt:          encrypt,
		Decrypt:          decrypt,
		PlaintextLen:     len(plaintext),
		CiphertextLen:    len(ciphertext),
		CiphertextDigest: encoding.Digest(ciphertext),
		RoundTrip:        secure.Equal(decrypted, plaintext),
	}

	return r.finish(res, enc, dec)
}

// finish writes both reports, logs the run and turns a failed round trip into an error.
func (r *Runner) finish(res Result, enc, dec *report) (Result, error) {
	files, err := r.writePair(res.Algorithm, res.Bits, enc, dec)
	if err != nil {
		return res, err
	}
	res.Files = files

	if !res.RoundTrip {
		r.logger.Error("Round trip failed", "run", res.Name())
		return res, fmt.Errorf("%s: %w", res.Name(), ErrRoundTripMismatch)
	}

	r.logResult(res)
	return res, nil
}
