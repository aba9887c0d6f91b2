package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/cryptobench/pkg/crypto/aes"
)

// VectorResult reports one known-answer test.
type VectorResult struct {
	Name    string `json:"name"`
	KeySize string `json:"key_size"`
	Passed  bool   `json:"passed"`
	Error   string `json:"error,omitempty"`
}

func NewVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run the AES known-answer tests",
		Long: `Encrypt and decrypt the FIPS-197 example vectors and report whether the
implementation reproduces them in both directions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vectors := aes.KnownAnswerTests()
			results := make([]VectorResult, len(vectors))
			failed := 0

			for i, v := range vectors {
				results[i] = VectorResult{Name: v.Name, KeySize: v.Size.String(), Passed: true}
				if err := v.Check(); err != nil {
					results[i].Passed = false
					results[i].Error = err.Error()
					failed++
				}
			}

			if jsonRequested(cmd) {
				if err := outputJSON(cmd, results); err != nil {
					return err
				}
			} else {
				w := cmd.OutOrStdout()
				green := color.New(color.FgGreen, color.Bold)
				red := color.New(color.FgRed, color.Bold)

				fmt.Fprintln(w)
				for _, r := range results {
					if r.Passed {
						green.Fprintf(w, "✓ %s (%s)\n", r.Name, r.KeySize)
					} else {
						red.Fprintf(w, "✗ %s (%s): %s\n", r.Name, r.KeySize, r.Error)
					}
				}
				fmt.Fprintln(w)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d known-answer tests failed", failed, len(vectors))
			}

			if !jsonRequested(cmd) {
				fmt.Fprintf(cmd.OutOrStdout(), "All %d known-answer tests passed.\n", len(vectors))
			}
			return nil
		},
	}

	return cmd
}
