package validation

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/Davincible/cryptobench/pkg/crypto/aes"
	"github.com/Davincible/cryptobench/pkg/crypto/ecc"
	"github.com/Davincible/cryptobench/pkg/crypto/rsa"
)

var (
	hexPattern     = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	decimalPattern = regexp.MustCompile(`^-?[0-9]+$`)
)

// ValidateHex accepts an even-length hex string with an optional 0x prefix.
func ValidateHex(input string) error {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(strings.TrimPrefix(input, "0x"), "0X")
	if len(input) == 0 {
		return fmt.Errorf("hex string cannot be empty")
	}

	if len(input)%2 != 0 {
		return fmt.Errorf("hex string must have even length")
	}

	if !hexPattern.MatchString(input) {
		return fmt.Errorf("invalid hex characters")
	}

	return nil
}

// ValidateAESKey checks that a hex key matches the requested key size.
func ValidateAESKey(key string, bits int) error {
	size, err := aes.ParseKeySize(bits)
	if err != nil {
		return err
	}

	if err := ValidateHex(key); err != nil {
		return fmt.Errorf("invalid key format: %w", err)
	}

	key = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(key), "0x"), "0X")
	if got := len(key) / 2; got != size.Bytes() {
		return fmt.Errorf("%w: %s key must be %d bytes (got %d)", aes.ErrInvalidKeyLength, size, size.Bytes(), got)
	}

	return nil
}

// ValidateMnemonic performs a shape check on a key mnemonic. AES keys map to
// 12, 18 or 24 words.
func ValidateMnemonic(words string) error {
	words = strings.TrimSpace(words)
	if words == "" {
		return fmt.Errorf("mnemonic cannot be empty")
	}

	wordList := strings.Fields(words)
	wordCount := len(wordList)

	if !ValidateWordCount(wordCount) {
		return fmt.Errorf("mnemonic must have 12, 18, or 24 words (got %d)", wordCount)
	}

	for i, word := range wordList {
		if len(word) < 3 || len(word) > 8 {
			return fmt.Errorf("word %d has invalid length: %s", i+1, word)
		}

		for _, ch := range word {
			if ch < 'a' || ch > 'z' {
				return fmt.Errorf("word %d contains invalid characters: %s", i+1, word)
			}
		}
	}

	return nil
}

// ValidateWordCount reports whether count words encode an AES key.
func ValidateWordCount(count int) bool {
	for _, size := range aes.KeySizes {
		if count == size.Bytes()*3/4 {
			return true
		}
	}
	return false
}

func ValidateRSABits(bits int) error {
	if bits < rsa.MinBits {
		return fmt.Errorf("RSA modulus must be at least %d bits (got %d)", rsa.MinBits, bits)
	}
	if bits%2 != 0 {
		return fmt.Errorf("RSA modulus size must be even (got %d)", bits)
	}
	return nil
}

func ValidateCurve(name string) error {
	if _, err := ecc.CurveByName(name); err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(ecc.CurveNames(), ", "))
	}
	return nil
}

// ValidateDecimal accepts a base-10 integer, or a 0x-prefixed hex integer.
func ValidateDecimal(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("integer cannot be empty")
	}

	if strings.HasPrefix(input, "0x") || strings.HasPrefix(input, "0X") {
		if _, ok := new(big.Int).SetString(input[2:], 16); !ok {
			return fmt.Errorf("invalid hex integer: %s", input)
		}
		return nil
	}

	if !decimalPattern.MatchString(input) {
		return fmt.Errorf("invalid decimal integer: %s", input)
	}

	return nil
}

// ParseSizeList parses a comma separated list such as "128,192,256".
func ParseSizeList(input string) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("size list cannot be empty")
	}

	var sizes []int
	for i, field := range strings.Split(input, ",") {
		field = strings.TrimSpace(field)
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("size %d is not a number: %q", i+1, field)
		}
		if n <= 0 {
			return nil, fmt.Errorf("size %d must be positive (got %d)", i+1, n)
		}
		sizes = append(sizes, n)
	}

	return sizes, nil
}

// ValidatePlaintext rejects input that the block codec cannot reproduce.
// Trailing NUL bytes are removed as padding on decryption.
func ValidatePlaintext(text string) error {
	if text == "" {
		return fmt.Errorf("plaintext cannot be empty")
	}

	if strings.HasSuffix(text, "\x00") {
		return fmt.Errorf("plaintext ends with a NUL byte, which is indistinguishable from padding")
	}

	return nil
}

// SanitizeInput trims every line and normalises line endings to \n.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)

	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	lines := strings.Split(input, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return strings.Join(lines, "\n")
}
