package bench

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davincible/cryptobench/pkg/config"
	"github.com/Davincible/cryptobench/pkg/crypto/aes"
	"github.com/Davincible/cryptobench/pkg/encoding"
)

const samplePlaintext = "The quick brown fox jumps over the lazy dog"

var secondsLine = regexp.MustCompile(`^[A-Za-z ]+ Time: \d+\.\d{9} seconds$`)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestRunner(t *testing.T, plaintext string) (*Runner, Options) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "plaintext.txt")
	require.NoError(t, os.WriteFile(path, []byte(plaintext), 0600))

	opts := Options{
		PlaintextPath:   path,
		OutputDir:       filepath.Join(dir, "out"),
		AESKeySizes:     []int{128, 192, 256},
		RSAKeySizes:     []int{64},
		ECCKeySizes:     []int{128},
		PrimalityRounds: 10,
	}
	return NewRunner(opts, quietLogger()), opts
}

func readReport(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestReadPlaintext(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"single line", "hello", "hello"},
		{"first line only", "  first  \nsecond\n", "first"},
		{"crlf", "line\r\nnext", "line"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_"))
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			got, err := ReadPlaintext(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}

	_, err := ReadPlaintext(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRunAESWritesReports(t *testing.T) {
	r, opts := newTestRunner(t, samplePlaintext)

	res, err := r.RunAES([]byte(samplePlaintext), 192)
	require.NoError(t, err)

	assert.Equal(t, "AES-192", res.Name())
	assert.True(t, res.RoundTrip)
	assert.Equal(t, 48, res.CiphertextLen)
	assert.Len(t, res.CiphertextDigest, 64)
	require.Len(t, res.Files, 2)
	assert.Equal(t, filepath.Join(opts.OutputDir, "aes", "ciphertext-aes-192.txt"), res.Files[0])
	assert.Equal(t, filepath.Join(opts.OutputDir, "aes", "decrypted-aes-192.txt"), res.Files[1])

	sections := strings.Split(readReport(t, res.Files[0]), "\n\n")
	require.Len(t, sections, 3)
	assert.Regexp(t, `^K = 0x[0-9a-f]{48}$`, sections[0])
	require.True(t, strings.HasPrefix(sections[1], "C = "))
	assert.Regexp(t, secondsLine, sections[2])

	// The report holds everything needed to decrypt independently.
	key, err := encoding.ParseKeyHex(strings.TrimPrefix(sections[0], "K = "))
	require.NoError(t, err)
	values, err := encoding.ParseByteValues(strings.TrimPrefix(sections[1], "C = "))
	require.NoError(t, err)
	states, err := aes.StatesFromValues(values)
	require.NoError(t, err)
	c, err := aes.NewCipher(key, aes.AES192)
	require.NoError(t, err)
	assert.Equal(t, samplePlaintext, string(aes.FromBlocks(c.DecryptBlocks(states))))

	decrypted := strings.Split(readReport(t, res.Files[1]), "\n\n")
	require.Len(t, decrypted, 2)
	assert.Equal(t, "P = "+samplePlaintext, decrypted[0])
	assert.Regexp(t, secondsLine, decrypted[1])
}

func TestRunAESInvalidSize(t *testing.T) {
	r, _ := newTestRunner(t, samplePlaintext)
	_, err := r.RunAES([]byte(samplePlaintext), 100)
	assert.ErrorIs(t, err, aes.ErrInvalidKeySize)
}

func TestRunRSAWritesReports(t *testing.T) {
	r, opts := newTestRunner(t, samplePlaintext)

	res, err := r.RunRSA([]byte(samplePlaintext), 64)
	require.NoError(t, err)
	assert.True(t, res.RoundTrip)
	assert.Equal(t, len(samplePlaintext), res.CiphertextLen)

	sections := strings.Split(readReport(t, filepath.Join(opts.OutputDir, "rsa", "ciphertext-rsa-64.txt")), "\n\n")
	require.Len(t, sections, 3)
	assert.True(t, strings.HasPrefix(sections[0], "C = "))
	assert.Regexp(t, `^d = \d+$`, sections[1])

	times := strings.Split(sections[2], "\n")
	require.Len(t, times, 2)
	assert.True(t, strings.HasPrefix(times[0], "Key Generation Time: "))
	assert.True(t, strings.HasPrefix(times[1], "Encryption Time: "))

	assert.Equal(t, "P = "+samplePlaintext,
		strings.Split(readReport(t, filepath.Join(opts.OutputDir, "rsa", "decrypted-rsa-64.txt")), "\n\n")[0])
}

func TestRunECCWritesReports(t *testing.T) {
	r, opts := newTestRunner(t, samplePlaintext)

	res, err := r.RunECC([]byte(samplePlaintext), 128)
	require.NoError(t, err)
	assert.True(t, res.RoundTrip)
	assert.Equal(t, "secp128r1", res.Curve)
	assert.Equal(t, "ECC-128 (secp128r1)", res.Name())

	sections := strings.Split(readReport(t, filepath.Join(opts.OutputDir, "ecc", "ciphertext-ecc-128.txt")), "\n\n")
	require.Len(t, sections, 4)
	assert.Regexp(t, `^d = \d+$`, sections[0])
	assert.Regexp(t, `^C1 = \(\d+, \d+\)$`, sections[1])
	assert.True(t, strings.HasPrefix(sections[2], "C2 = "))
}

func TestRunECCUnknownSize(t *testing.T) {
	r, _ := newTestRunner(t, samplePlaintext)
	_, err := r.RunECC([]byte(samplePlaintext), 521)
	assert.Error(t, err)
}

func TestRunAll(t *testing.T) {
	r, opts := newTestRunner(t, samplePlaintext+"\nignored second line")

	results, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 5)

	names := make([]string, len(results))
	for i, res := range results {
		names[i] = res.Name()
		assert.True(t, res.RoundTrip, res.Name())
		assert.Equal(t, len(samplePlaintext), res.PlaintextLen)
		for _, f := range res.Files {
			info, err := os.Stat(f)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
		}
	}
	assert.Equal(t, []string{"AES-128", "AES-192", "AES-256", "RSA-64", "ECC-128 (secp128r1)"}, names)

	_, err = os.Stat(filepath.Join(opts.OutputDir, "aes", "ciphertext-aes-256.txt"))
	assert.NoError(t, err)
}

func TestRunCancelled(t *testing.T) {
	r, _ := newTestRunner(t, samplePlaintext)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, results)
}

func TestRunMissingPlaintext(t *testing.T) {
	r := NewRunner(Options{PlaintextPath: filepath.Join(t.TempDir(), "nope")}, quietLogger())
	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open plaintext")
}

func TestFinishRoundTripMismatch(t *testing.T) {
	r, _ := newTestRunner(t, samplePlaintext)

	res := Result{Algorithm: AlgorithmAES, Bits: 128, RoundTrip: false}
	_, err := r.finish(res, &report{}, &report{})
	assert.ErrorIs(t, err, ErrRoundTripMismatch)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	opts := OptionsFromConfig(cfg)

	assert.Equal(t, cfg.Bench.PlaintextPath, opts.PlaintextPath)
	assert.Equal(t, cfg.Bench.AESKeySizes, opts.AESKeySizes)

	opts.AESKeySizes[0] = 1
	assert.Equal(t, 128, cfg.Bench.AESKeySizes[0])
}

func TestReportFormat(t *testing.T) {
	rp := &report{}
	rp.field("C", "1 2 3")
	rp.field("d", "7")
	rp.timing("Key Generation Time", 1500*time.Millisecond)
	rp.timing("Encryption Time", 2*time.Microsecond)

	want := "C = 1 2 3\n\nd = 7\n\nKey Generation Time: 1.500000000 seconds\nEncryption Time: 0.000002000 seconds"
	assert.Equal(t, want, rp.String())
}

func BenchmarkRunAES128(b *testing.B) {
	dir := b.TempDir()
	r := NewRunner(Options{OutputDir: dir}, quietLogger())
	plaintext := []byte(strings.Repeat(samplePlaintext, 10))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.RunAES(plaintext, 128); err != nil {
			b.Fatal(err)
		}
	}
}
