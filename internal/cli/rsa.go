package cli

import (
	"fmt"
	"math/big"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/cryptobench/internal/validation"
	"github.com/Davincible/cryptobench/pkg/crypto/numeric"
	"github.com/Davincible/cryptobench/pkg/crypto/rsa"
	"github.com/Davincible/cryptobench/pkg/encoding"
)

func NewRSACommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rsa",
		Short: "Textbook RSA key generation, encryption and decryption",
		Long: `Textbook RSA with e = 65537 and no padding.

Each plaintext byte is encrypted on its own as m^e mod n, so equal bytes give
equal ciphertext values. This exists to compare timings with AES and ECC.`,
	}

	cmd.AddCommand(
		newRSAKeygenCommand(),
		newRSAEncryptCommand(),
		newRSADecryptCommand(),
	)

	return cmd
}

func newRSAKeygenCommand() *cobra.Command {
	var (
		bits   int
		rounds int
	)

	cmd := &cobra.Command{
		Use:     "keygen",
		Short:   "Generate an RSA key pair",
		Example: `  cryptobench rsa keygen --bits 256`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateRSABits(bits); err != nil {
				return err
			}

			key, err := rsa.GenerateKeyWithRounds(bits, rounds)
			if err != nil {
				return fmt.Errorf("failed to generate key: %w", err)
			}

			if jsonRequested(cmd) {
				return outputJSON(cmd, map[string]interface{}{
					"bits": key.Bits(),
					"n":    key.N.String(),
					"e":    key.E.String(),
					"d":    key.D.String(),
				})
			}

			w := cmd.OutOrStdout()
			green := color.New(color.FgGreen, color.Bold)
			red := color.New(color.FgRed, color.Bold)

			green.Fprintf(w, "✓ Generated %d-bit RSA key\n\n", key.Bits())
			printField(w, "Modulus (n)", key.N.String())
			printField(w, "Public exponent (e)", key.E.String())
			printField(w, "Private exponent (d)", key.D.String())
			fmt.Fprintln(w)
			red.Fprintln(w, "Textbook RSA without padding. Do not use for real data.")
			return nil
		},
	}

	cmd.Flags().IntVarP(&bits, "bits", "b", 128, "Modulus size in bits")
	cmd.Flags().IntVar(&rounds, "rounds", numeric.DefaultRounds, "Miller-Rabin rounds per prime candidate")

	return cmd
}

func newRSAEncryptCommand() *cobra.Command {
	var (
		n, e       string
		text       string
		inputFile  string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:     "encrypt",
		Short:   "Encrypt text with an RSA public key",
		Example: `  cryptobench rsa encrypt --n 3233 --e 17 --text "A"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := parseRSAPublicKey(n, e)
			if err != nil {
				return err
			}

			plaintext, err := readInput(cmd, text, inputFile)
			if err != nil {
				return err
			}

			ct, err := rsa.Encrypt(pub, plaintext)
			if err != nil {
				return fmt.Errorf("failed to encrypt: %w", err)
			}

			out := encoding.FormatBigInts(ct)
			if jsonRequested(cmd) {
				return outputJSON(cmd, map[string]interface{}{
					"bits":       pub.Bits(),
					"ciphertext": out,
				})
			}

			return writeOutput(cmd, outputFile, []byte(out))
		},
	}

	cmd.Flags().StringVar(&n, "n", "", "Modulus (decimal or 0x hex)")
	cmd.Flags().StringVar(&e, "e", fmt.Sprint(rsa.DefaultExponent), "Public exponent")
	cmd.Flags().StringVarP(&text, "text", "t", "", "Plaintext to encrypt")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read plaintext from file (default: stdin)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write ciphertext to file")
	_ = cmd.MarkFlagRequired("n")

	return cmd
}

func newRSADecryptCommand() *cobra.Command {
	var (
		n, d       string
		ciphertext string
		inputFile  string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:     "decrypt",
		Short:   "Decrypt RSA ciphertext values",
		Example: `  cryptobench rsa decrypt --n 3233 --d 2753 --ciphertext "2790"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := parseRSAPublicKey(n, fmt.Sprint(rsa.DefaultExponent))
			if err != nil {
				return err
			}
			if err := validation.ValidateDecimal(d); err != nil {
				return fmt.Errorf("invalid private exponent: %w", err)
			}
			dv, err := encoding.ParseBigInt(d)
			if err != nil {
				return err
			}

			input, err := readInput(cmd, ciphertext, inputFile)
			if err != nil {
				return err
			}
			ct, err := encoding.ParseBigInts(string(input))
			if err != nil {
				return fmt.Errorf("invalid ciphertext: %w", err)
			}

			priv := &rsa.PrivateKey{PublicKey: *pub, D: dv}
			plaintext, err := rsa.Decrypt(priv, ct)
			if err != nil {
				return fmt.Errorf("failed to decrypt: %w", err)
			}

			if jsonRequested(cmd) {
				return outputJSON(cmd, map[string]interface{}{
					"plaintext": string(plaintext),
				})
			}

			return writeOutput(cmd, outputFile, plaintext)
		},
	}

	cmd.Flags().StringVar(&n, "n", "", "Modulus (decimal or 0x hex)")
	cmd.Flags().StringVar(&d, "d", "", "Private exponent (decimal or 0x hex)")
	cmd.Flags().StringVarP(&ciphertext, "ciphertext", "c", "", "Space separated ciphertext values")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read ciphertext from file (default: stdin)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write plaintext to file")
	_ = cmd.MarkFlagRequired("n")
	_ = cmd.MarkFlagRequired("d")

	return cmd
}

func parseRSAPublicKey(n, e string) (*rsa.PublicKey, error) {
	if err := validation.ValidateDecimal(n); err != nil {
		return nil, fmt.Errorf("invalid modulus: %w", err)
	}
	if err := validation.ValidateDecimal(e); err != nil {
		return nil, fmt.Errorf("invalid exponent: %w", err)
	}

	nv, err := encoding.ParseBigInt(n)
	if err != nil {
		return nil, err
	}
	ev, err := encoding.ParseBigInt(e)
	if err != nil {
		return nil, err
	}

	if nv.Cmp(big.NewInt(0xFF)) <= 0 {
		return nil, fmt.Errorf("modulus must exceed 255 so every byte can be encrypted")
	}
	if ev.Sign() <= 0 {
		return nil, fmt.Errorf("exponent must be positive")
	}

	return &rsa.PublicKey{N: nv, E: ev}, nil
}
