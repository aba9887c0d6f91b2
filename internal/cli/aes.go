package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/cryptobench/internal/validation"
	"github.com/Davincible/cryptobench/pkg/crypto/aes"
	"github.com/Davincible/cryptobench/pkg/encoding"
	"github.com/Davincible/cryptobench/pkg/secure"
)

// AESKeyResult is the JSON form of a generated key.
type AESKeyResult struct {
	KeySize  string `json:"key_size"`
	Key      string `json:"key"`
	Mnemonic string `json:"mnemonic"`
}

// AESCiphertextResult is the JSON form of an encryption.
type AESCiphertextResult struct {
	KeySize    string `json:"key_size"`
	Format     string `json:"format"`
	Blocks     int    `json:"blocks"`
	Ciphertext string `json:"ciphertext"`
	Digest     string `json:"digest"`
}

func NewAESCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aes",
		Short: "Encrypt and decrypt with AES-128/192/256",
		Long: `Block-wise AES as specified in FIPS-197.

Every 16-byte block is encrypted independently with the same key and the
last block is padded with NUL bytes. Identical plaintext blocks therefore
produce identical ciphertext blocks, and plaintext that ends in NUL bytes
loses them on decryption. Use this for study and timing, not for secrecy.`,
	}

	cmd.AddCommand(
		newAESKeygenCommand(),
		newAESEncryptCommand(),
		newAESDecryptCommand(),
	)

	return cmd
}

func newAESKeygenCommand() *cobra.Command {
	var bits int

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a random AES key",
		Example: `  # 256-bit key as hex and mnemonic
  cryptobench aes keygen --bits 256`,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := aes.ParseKeySize(bits)
			if err != nil {
				return err
			}

			key, err := aes.GenerateKey(size)
			if err != nil {
				return fmt.Errorf("failed to generate key: %w", err)
			}
			defer secure.Zero(key)

			words, err := encoding.KeyToMnemonic(key)
			if err != nil {
				return err
			}

			result := AESKeyResult{
				KeySize:  size.String(),
				Key:      encoding.FormatKeyHex(key),
				Mnemonic: words,
			}

			if jsonRequested(cmd) {
				return outputJSON(cmd, result)
			}

			w := cmd.OutOrStdout()
			green := color.New(color.FgGreen, color.Bold)
			yellow := color.New(color.FgYellow)

			green.Fprintf(w, "✓ Generated %s key\n\n", result.KeySize)
			printField(w, "Key (hex)", result.Key)
			printField(w, "Key (mnemonic)", result.Mnemonic)
			fmt.Fprintln(w)
			yellow.Fprintln(w, "Anyone holding this key can decrypt your data. Store it safely.")
			return nil
		},
	}

	cmd.Flags().IntVarP(&bits, "bits", "b", int(aes.AES128), "Key size in bits (128, 192, or 256)")

	return cmd
}

// aesKeyFlags are shared by encrypt and decrypt.
type aesKeyFlags struct {
	keyHex   string
	mnemonic string
	bits     int
}

func (f *aesKeyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.keyHex, "key", "k", "", "Key as hex (prompted for when neither --key nor --key-mnemonic is set)")
	cmd.Flags().StringVar(&f.mnemonic, "key-mnemonic", "", "Key as a BIP-39 mnemonic")
	cmd.Flags().IntVarP(&f.bits, "bits", "b", 0, "Key size in bits (default: inferred from the key)")
}

// cipher builds a cipher from whichever key source was given.
func (f *aesKeyFlags) cipher(cmd *cobra.Command) (*aes.Cipher, error) {
	var (
		key []byte
		err error
	)

	if f.mnemonic != "" {
		if err := validation.ValidateMnemonic(f.mnemonic); err != nil {
			return nil, fmt.Errorf("invalid key mnemonic: %w", err)
		}
		key, err = encoding.KeyFromMnemonic(f.mnemonic)
	} else {
		keyHex := f.keyHex
		if keyHex == "" {
			keyHex, err = readSecret(cmd, "Enter AES key (hex): ")
			if err != nil {
				return nil, fmt.Errorf("failed to read key: %w", err)
			}
		}
		if f.bits != 0 {
			if err := validation.ValidateAESKey(keyHex, f.bits); err != nil {
				return nil, err
			}
		}
		key, err = encoding.ParseKeyHex(keyHex)
	}
	if err != nil {
		return nil, err
	}
	defer secure.Zero(key)

	bits := f.bits
	if bits == 0 {
		bits = len(key) * 8
	}

	size, err := aes.ParseKeySize(bits)
	if err != nil {
		return nil, err
	}

	return aes.NewCipher(key, size)
}

func newAESEncryptCommand() *cobra.Command {
	var (
		keys       aesKeyFlags
		text       string
		inputFile  string
		outputFile string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt text with an AES key",
		Example: `  # Encrypt inline text, hex output
  cryptobench aes encrypt --key 000102030405060708090a0b0c0d0e0f --text "hello"

  # Encrypt a file to space separated byte values
  cryptobench aes encrypt --key-mnemonic "..." -i message.txt --format decimal -o message.enc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatHex && format != formatDecimal {
				return fmt.Errorf("unsupported format %q (use hex or decimal)", format)
			}

			c, err := keys.cipher(cmd)
			if err != nil {
				return err
			}

			plaintext, err := readInput(cmd, text, inputFile)
			if err != nil {
				return err
			}
			if err := validation.ValidatePlaintext(string(plaintext)); err != nil {
				return err
			}

			ciphertext := c.EncryptBytes(plaintext)

			out := hex.EncodeToString(ciphertext)
			if format == formatDecimal {
				out = encoding.FormatByteValues(ciphertext)
			}

			if jsonRequested(cmd) {
				return outputJSON(cmd, AESCiphertextResult{
					KeySize:    c.KeySize().String(),
					Format:     format,
					Blocks:     len(ciphertext) / aes.BlockSize,
					Ciphertext: out,
					Digest:     encoding.Digest(ciphertext),
				})
			}

			return writeOutput(cmd, outputFile, []byte(out))
		},
	}

	keys.register(cmd)
	cmd.Flags().StringVarP(&text, "text", "t", "", "Plaintext to encrypt")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read plaintext from file (default: stdin)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write ciphertext to file")
	cmd.Flags().StringVarP(&format, "format", "f", formatHex, "Ciphertext format: hex or decimal")

	return cmd
}

func newAESDecryptCommand() *cobra.Command {
	var (
		keys       aesKeyFlags
		ciphertext string
		inputFile  string
		outputFile string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt AES ciphertext",
		Example: `  # Decrypt hex ciphertext
  cryptobench aes decrypt --key 000102030405060708090a0b0c0d0e0f --ciphertext 69c4e0d8...

  # Decrypt a file written by 'aes encrypt --format decimal'
  cryptobench aes decrypt --key-mnemonic "..." -i message.enc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := keys.cipher(cmd)
			if err != nil {
				return err
			}

			input, err := readInput(cmd, ciphertext, inputFile)
			if err != nil {
				return err
			}

			states, err := parseCiphertext(string(input), format)
			if err != nil {
				return err
			}

			plaintext := aes.FromBlocks(c.DecryptBlocks(states))

			if jsonRequested(cmd) {
				return outputJSON(cmd, map[string]interface{}{
					"key_size":  c.KeySize().String(),
					"blocks":    len(states),
					"plaintext": string(plaintext),
				})
			}

			return writeOutput(cmd, outputFile, plaintext)
		},
	}

	keys.register(cmd)
	cmd.Flags().StringVarP(&ciphertext, "ciphertext", "c", "", "Ciphertext to decrypt")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read ciphertext from file (default: stdin)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write plaintext to file")
	cmd.Flags().StringVarP(&format, "format", "f", formatAuto, "Ciphertext format: auto, hex, or decimal")

	return cmd
}

// parseCiphertext turns hex or decimal ciphertext text into states.
func parseCiphertext(input, format string) ([]aes.State, error) {
	input = validation.SanitizeInput(input)
	if format == formatAuto {
		format = detectFormat(input)
	}

	switch format {
	case formatHex:
		// Hex may be wrapped over several lines.
		input = strings.ReplaceAll(input, "\n", "")
		if err := validation.ValidateHex(input); err != nil {
			return nil, fmt.Errorf("invalid ciphertext: %w", err)
		}
		data, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(input, "0x"), "0X"))
		if err != nil {
			return nil, fmt.Errorf("invalid ciphertext: %w", err)
		}
		return aes.StatesFromBytes(data)
	case formatDecimal:
		values, err := encoding.ParseByteValues(input)
		if err != nil {
			return nil, fmt.Errorf("invalid ciphertext: %w", err)
		}
		return aes.StatesFromValues(values)
	default:
		return nil, fmt.Errorf("could not determine ciphertext format, pass --format hex or --format decimal")
	}
}
