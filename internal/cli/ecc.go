package cli

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/cryptobench/internal/validation"
	"github.com/Davincible/cryptobench/pkg/crypto/ecc"
	"github.com/Davincible/cryptobench/pkg/encoding"
)

func NewECCCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ecc",
		Short: "Elliptic curve key generation, encryption and decryption",
		Long: fmt.Sprintf(`ElGamal-style encryption over a named short Weierstrass curve.

A fresh scalar k gives C1 = kG, and every plaintext byte is shifted by the x
coordinate of kQ. The receiver recomputes that point as d*C1.

Curves: %s`, strings.Join(ecc.CurveNames(), ", ")),
	}

	cmd.AddCommand(
		newECCKeygenCommand(),
		newECCEncryptCommand(),
		newECCDecryptCommand(),
	)

	return cmd
}

func newECCKeygenCommand() *cobra.Command {
	var curveName string

	cmd := &cobra.Command{
		Use:     "keygen",
		Short:   "Generate an ECC key pair",
		Example: `  cryptobench ecc keygen --curve P-256`,
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := lookupCurve(curveName)
			if err != nil {
				return err
			}

			key, err := ecc.GenerateKey(curve)
			if err != nil {
				return fmt.Errorf("failed to generate key: %w", err)
			}

			if jsonRequested(cmd) {
				return outputJSON(cmd, map[string]interface{}{
					"curve": curve.Name,
					"d":     key.D.String(),
					"qx":    key.Q.X.String(),
					"qy":    key.Q.Y.String(),
				})
			}

			w := cmd.OutOrStdout()
			green := color.New(color.FgGreen, color.Bold)

			green.Fprintf(w, "✓ Generated key on %s\n\n", curve.Name)
			printField(w, "Private scalar (d)", key.D.String())
			printField(w, "Public point Q.x", key.Q.X.String())
			printField(w, "Public point Q.y", key.Q.Y.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&curveName, "curve", "secp128r1", "Curve name")

	return cmd
}

func newECCEncryptCommand() *cobra.Command {
	var (
		curveName  string
		qx, qy     string
		text       string
		inputFile  string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:     "encrypt",
		Short:   "Encrypt text to an ECC public key",
		Example: `  cryptobench ecc encrypt --curve P-192 --qx <x> --qy <y> --text "hello"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := lookupCurve(curveName)
			if err != nil {
				return err
			}

			x, y, err := parsePoint(qx, qy, "public point")
			if err != nil {
				return err
			}
			pub, err := ecc.NewPublicKey(curve, x, y)
			if err != nil {
				return err
			}

			plaintext, err := readInput(cmd, text, inputFile)
			if err != nil {
				return err
			}

			ct, err := ecc.Encrypt(pub, plaintext)
			if err != nil {
				return fmt.Errorf("failed to encrypt: %w", err)
			}

			c2 := encoding.FormatBigInts(ct.C2)
			if jsonRequested(cmd) {
				return outputJSON(cmd, map[string]interface{}{
					"curve": curve.Name,
					"c1x":   ct.C1.X.String(),
					"c1y":   ct.C1.Y.String(),
					"c2":    c2,
				})
			}

			if outputFile != "" {
				return writeOutput(cmd, outputFile, []byte(fmt.Sprintf("C1 = %s\n\nC2 = %s", ct.C1, c2)))
			}

			w := cmd.OutOrStdout()
			printField(w, "C1.x", ct.C1.X.String())
			printField(w, "C1.y", ct.C1.Y.String())
			printField(w, "C2", c2)
			return nil
		},
	}

	cmd.Flags().StringVar(&curveName, "curve", "secp128r1", "Curve name")
	cmd.Flags().StringVar(&qx, "qx", "", "Public point x coordinate")
	cmd.Flags().StringVar(&qy, "qy", "", "Public point y coordinate")
	cmd.Flags().StringVarP(&text, "text", "t", "", "Plaintext to encrypt")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read plaintext from file (default: stdin)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write ciphertext to file")
	_ = cmd.MarkFlagRequired("qx")
	_ = cmd.MarkFlagRequired("qy")

	return cmd
}

func newECCDecryptCommand() *cobra.Command {
	var (
		curveName  string
		d          string
		c1x, c1y   string
		ciphertext string
		inputFile  string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:     "decrypt",
		Short:   "Decrypt ECC ciphertext",
		Example: `  cryptobench ecc decrypt --curve P-192 --d <d> --c1x <x> --c1y <y> --ciphertext "<C2>"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := lookupCurve(curveName)
			if err != nil {
				return err
			}

			if err := validation.ValidateDecimal(d); err != nil {
				return fmt.Errorf("invalid private scalar: %w", err)
			}
			dv, err := encoding.ParseBigInt(d)
			if err != nil {
				return err
			}
			priv, err := ecc.NewPrivateKey(curve, dv)
			if err != nil {
				return err
			}

			x, y, err := parsePoint(c1x, c1y, "C1")
			if err != nil {
				return err
			}

			input, err := readInput(cmd, ciphertext, inputFile)
			if err != nil {
				return err
			}
			c2, err := encoding.ParseBigInts(string(input))
			if err != nil {
				return fmt.Errorf("invalid ciphertext: %w", err)
			}

			plaintext, err := ecc.Decrypt(priv, &ecc.Ciphertext{C1: ecc.Point{X: x, Y: y}, C2: c2})
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

	cmd.Flags().StringVar(&curveName, "curve", "secp128r1", "Curve name")
	cmd.Flags().StringVar(&d, "d", "", "Private scalar")
	cmd.Flags().StringVar(&c1x, "c1x", "", "C1 x coordinate")
	cmd.Flags().StringVar(&c1y, "c1y", "", "C1 y coordinate")
	cmd.Flags().StringVarP(&ciphertext, "ciphertext", "c", "", "Space separated C2 values")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read C2 from file (default: stdin)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write plaintext to file")
	_ = cmd.MarkFlagRequired("d")
	_ = cmd.MarkFlagRequired("c1x")
	_ = cmd.MarkFlagRequired("c1y")

	return cmd
}

func lookupCurve(name string) (*ecc.Curve, error) {
	if err := validation.ValidateCurve(name); err != nil {
		return nil, err
	}
	return ecc.CurveByName(name)
}

func parsePoint(xs, ys, what string) (*big.Int, *big.Int, error) {
	for _, v := range []string{xs, ys} {
		if err := validation.ValidateDecimal(v); err != nil {
			return nil, nil, fmt.Errorf("invalid %s: %w", what, err)
		}
	}

	x, err := encoding.ParseBigInt(xs)
	if err != nil {
		return nil, nil, err
	}
	y, err := encoding.ParseBigInt(ys)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}
