// Package encoding converts keys and ciphertexts to and from the textual forms
// written by the benchmark harness and accepted by the CLI.
package encoding

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"
)

// FormatByteValues renders data as space separated decimal values: "72 101 108".
func FormatByteValues(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(int(b)))
	}
	return sb.String()
}

// ParseByteValues parses whitespace separated decimal integers. Range checks
// are left to the consumer so out-of-range values can be reported precisely.
func ParseByteValues(s string) ([]int, error) {
	fields := strings.Fields(s)
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q at position %d", f, i)
		}
		values[i] = v
	}
	return values, nil
}

// FormatBigInts renders values as space separated decimal integers.
func FormatBigInts(values []*big.Int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

// ParseBigInts parses whitespace separated decimal integers.
func ParseBigInts(s string) ([]*big.Int, error) {
	fields := strings.Fields(s)
	values := make([]*big.Int, len(fields))
	for i, f := range fields {
		v, ok := new(big.Int).SetString(f, 10)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q at position %d", f, i)
		}
		values[i] = v
	}
	return values, nil
}

// ParseBigInt parses a decimal integer, or a hex one when prefixed with 0x.
func ParseBigInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return v, nil
}

// FormatKeyHex renders a key as 0x-prefixed lowercase hex.
func FormatKeyHex(key []byte) string {
	return "0x" + hex.EncodeToString(key)
}

// ParseKeyHex decodes a hex key with an optional 0x prefix.
func ParseKeyHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex key: %w", err)
	}
	return key, nil
}

// KeyToMnemonic encodes a 16, 24 or 32-byte key as a BIP-39 phrase of 12, 18 or 24 words.
func KeyToMnemonic(key []byte) (string, error) {
	words, err := bip39.NewMnemonic(key)
	if err != nil {
		return "", fmt.Errorf("failed to encode key as mnemonic: %w", err)
	}
	return words, nil
}

// KeyFromMnemonic decodes a BIP-39 phrase back into the key bytes.
func KeyFromMnemonic(words string) ([]byte, error) {
	words = strings.Join(strings.Fields(words), " ")
	if !bip39.IsMnemonicValid(words) {
		return nil, fmt.Errorf("invalid mnemonic phrase")
	}
	key, err := bip39.EntropyFromMnemonic(words)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mnemonic: %w", err)
	}
	return key, nil
}

// Digest returns the hex BLAKE2b-256 digest of data. Reports use it to compare
// ciphertexts without printing them in full.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
