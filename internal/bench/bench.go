// Package bench runs each cipher over a plaintext file, times key generation,
// encryption and decryption, and writes one report file per phase.
package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Davincible/cryptobench/pkg/config"
	"github.com/Davincible/cryptobench/pkg/crypto/numeric"
)

// ErrRoundTripMismatch is returned when decryption does not reproduce the plaintext.
var ErrRoundTripMismatch = errors.New("decrypted text does not match plaintext")

const (
	AlgorithmAES = "AES"
	AlgorithmRSA = "RSA"
	AlgorithmECC = "ECC"
)

// Options selects what a Runner measures and where it writes reports.
type Options struct {
	PlaintextPath   string
	OutputDir       string
	AESKeySizes     []int
	RSAKeySizes     []int
	ECCKeySizes     []int
	PrimalityRounds int
}

// OptionsFromConfig copies the bench section of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	b := cfg.Bench
	return Options{
		PlaintextPath:   b.PlaintextPath,
		OutputDir:       b.OutputDir,
		AESKeySizes:     append([]int(nil), b.AESKeySizes...),
		RSAKeySizes:     append([]int(nil), b.RSAKeySizes...),
		ECCKeySizes:     append([]int(nil), b.ECCKeySizes...),
		PrimalityRounds: b.PrimalityRounds,
	}
}

// Result describes one algorithm at one key size.
type Result struct {
	Algorithm        string        `json:"algorithm"`
	Bits             int           `json:"bits"`
	Curve            string        `json:"curve,omitempty"`
	KeyGen           time.Duration `json:"keygen_ns"`
	Encrypt          time.Duration `json:"encrypt_ns"`
	Decrypt          time.Duration `json:"decrypt_ns"`
	PlaintextLen     int           `json:"plaintext_len"`
	CiphertextLen    int           `json:"ciphertext_len"`
	CiphertextDigest string        `json:"ciphertext_digest"`
	RoundTrip        bool          `json:"round_trip"`
	Files            []string      `json:"files"`
}

// Name is the label used in logs and summaries, e.g. "AES-128" or "ECC-256 (P-256)".
func (r Result) Name() string {
	if r.Curve != "" {
		return fmt.Sprintf("%s-%d (%s)", r.Algorithm, r.Bits, r.Curve)
	}
	return fmt.Sprintf("%s-%d", r.Algorithm, r.Bits)
}

// Runner executes benchmark runs. It is not safe for concurrent use because
// runs of the same algorithm and size write to the same files.
type Runner struct {
	opts   Options
	logger *slog.Logger
}

// NewRunner returns a Runner that logs to logger, or to slog.Default when nil.
func NewRunner(opts Options, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PrimalityRounds <= 0 {
		opts.PrimalityRounds = numeric.DefaultRounds
	}
	return &Runner{opts: opts, logger: logger}
}

// Run reads the plaintext once and benchmarks every configured AES, RSA and
// ECC size in that order. It stops at the first failing run.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	plaintext, err := ReadPlaintext(r.opts.PlaintextPath)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Starting benchmark",
		"plaintext", r.opts.PlaintextPath,
		"length", len(plaintext),
		"output", r.opts.OutputDir)

	type job struct {
		algorithm string
		bits      int
		run       func([]byte, int) (Result, error)
	}

	var jobs []job
	for _, bits := range r.opts.AESKeySizes {
		jobs = append(jobs, job{AlgorithmAES, bits, r.RunAES})
	}
	for _, bits := range r.opts.RSAKeySizes {
		jobs = append(jobs, job{AlgorithmRSA, bits, r.RunRSA})
	}
	for _, bits := range r.opts.ECCKeySizes {
		jobs = append(jobs, job{AlgorithmECC, bits, r.RunECC})
	}

	results := make([]Result, 0, len(jobs))
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := j.run(plaintext, j.bits)
		if err != nil {
			return results, fmt.Errorf("%s-%d: %w", j.algorithm, j.bits, err)
		}
		results = append(results, res)
	}

	return results, nil
}

func (r *Runner) logResult(res Result) {
	r.logger.Info("Benchmark run complete",
		"run", res.Name(),
		"keygen", res.KeyGen,
		"encrypt", res.Encrypt,
		"decrypt", res.Decrypt,
		"digest", res.CiphertextDigest)
}
