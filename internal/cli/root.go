package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the cryptobench command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cryptobench",
		Short: "AES, RSA and ECC from first principles, with a timing harness",
		Long: `Cryptobench implements AES-128/192/256 following FIPS-197, together with
textbook RSA and an ElGamal-style elliptic curve scheme, and times them
against each other.

Features:
- AES key expansion, round transforms and block encryption from scratch
- Known-answer tests against the FIPS-197 vectors
- Textbook RSA with Miller-Rabin prime generation
- Elliptic curve encryption over secp128r1, P-192 and P-256
- File-based benchmark reports per algorithm and key size
- Saved benchmark sessions for later comparison

None of these modes are safe for protecting real data.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		NewAESCommand(),
		NewRSACommand(),
		NewECCCommand(),
		NewBenchCommand(),
		NewHistoryCommand(),
		NewVerifyCommand(),
		NewConfigCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: $CRYPTOBENCH_CONFIG or ~/.config/cryptobench/config.json)")

	return rootCmd
}
