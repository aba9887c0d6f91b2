package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/cryptobench/internal/bench"
	"github.com/Davincible/cryptobench/internal/validation"
	"github.com/Davincible/cryptobench/pkg/config"
)

func NewBenchCommand() *cobra.Command {
	var (
		plaintext string
		outputDir string
		aesSizes  string
		rsaSizes  string
		eccSizes  string
		rounds    int
		save      bool
		name      string
		tags      []string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time AES, RSA and ECC over a plaintext file",
		Long: `Read the first line of the plaintext file and, for every configured key
size, time key generation, encryption and decryption. Each run writes
<out>/<alg>/ciphertext-<alg>-<bits>.txt and <out>/<alg>/decrypted-<alg>-<bits>.txt.

Defaults come from the config file; flags override them for one run.
Pass "none" to a size flag to skip that algorithm.`,
		Example: `  # Run everything with the configured defaults
  cryptobench bench

  # Only AES-256 and 512-bit RSA
  cryptobench bench --aes 256 --rsa 512 --ecc none`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cfg := *cm.GetConfig()
			if err := applyBenchFlags(&cfg, plaintext, outputDir, aesSizes, rsaSizes, eccSizes, rounds); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid benchmark settings: %w", err)
			}

			runner := bench.NewRunner(bench.OptionsFromConfig(&cfg), slog.Default())
			results, err := runner.Run(cmd.Context())

			if jsonRequested(cmd) {
				if jerr := outputJSON(cmd, results); jerr != nil {
					return jerr
				}
			} else {
				printBenchSummary(cmd, results)
			}

			if err != nil || !save {
				return err
			}
			return saveSession(cmd, cm, cfg.Bench.PlaintextPath, name, tags, results)
		},
	}

	cmd.Flags().StringVarP(&plaintext, "plaintext", "p", "", "Plaintext file (first line is used)")
	cmd.Flags().StringVar(&outputDir, "out", "", "Directory for report files")
	cmd.Flags().StringVar(&aesSizes, "aes", "", "AES key sizes, e.g. 128,192,256")
	cmd.Flags().StringVar(&rsaSizes, "rsa", "", "RSA modulus sizes")
	cmd.Flags().StringVar(&eccSizes, "ecc", "", "ECC curve sizes (128, 192, 256)")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Miller-Rabin rounds for RSA primes")
	cmd.Flags().BoolVar(&save, "save", false, "Save the results to the history store")
	cmd.Flags().StringVar(&name, "name", "", "Session name for --save")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Session tags for --save (repeatable)")

	return cmd
}

func saveSession(cmd *cobra.Command, cm *config.ConfigManager, plaintextPath, name string, tags []string, results []bench.Result) error {
	plaintext, err := bench.ReadPlaintext(plaintextPath)
	if err != nil {
		return err
	}

	session, err := bench.NewSession(name, tags, plaintext, results)
	if err != nil {
		return err
	}

	store, err := bench.OpenStore(cm.HistoryDir())
	if err != nil {
		return err
	}
	if err := store.Add(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Saved session %s to %s\n", session.ShortID(), cm.HistoryDir())
	return nil
}

func applyBenchFlags(cfg *config.Config, plaintext, outputDir, aesSizes, rsaSizes, eccSizes string, rounds int) error {
	if plaintext != "" {
		cfg.Bench.PlaintextPath = plaintext
	}
	if outputDir != "" {
		cfg.Bench.OutputDir = outputDir
	}
	if rounds != 0 {
		cfg.Bench.PrimalityRounds = rounds
	}

	lists := []struct {
		name string
		flag string
		dst  *[]int
	}{
		{"aes", aesSizes, &cfg.Bench.AESKeySizes},
		{"rsa", rsaSizes, &cfg.Bench.RSAKeySizes},
		{"ecc", eccSizes, &cfg.Bench.ECCKeySizes},
	}

	for _, l := range lists {
		switch strings.TrimSpace(l.flag) {
		case "":
		case "none":
			*l.dst = nil
		default:
			sizes, err := validation.ParseSizeList(l.flag)
			if err != nil {
				return fmt.Errorf("--%s: %w", l.name, err)
			}
			*l.dst = sizes
		}
	}

	return nil
}

func printBenchSummary(cmd *cobra.Command, results []bench.Result) {
	w := cmd.OutOrStdout()
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed, color.Bold)

	fmt.Fprintln(w)
	yellow.Fprintln(w, "=== BENCHMARK RESULTS ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-22s %14s %14s %14s  %s\n", "Run", "Keygen (s)", "Encrypt (s)", "Decrypt (s)", "Round trip")

	for _, r := range results {
		fmt.Fprintf(w, "%-22s %14.9f %14.9f %14.9f  ",
			r.Name(), r.KeyGen.Seconds(), r.Encrypt.Seconds(), r.Decrypt.Seconds())
		if r.RoundTrip {
			green.Fprintln(w, "✓")
		} else {
			red.Fprintln(w, "✗")
		}
	}

	if len(results) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Reports written under %s\n", reportRoot(results))
	}
}

// reportRoot returns the output directory above the per-algorithm report directories.
func reportRoot(results []bench.Result) string {
	for _, r := range results {
		if len(r.Files) > 0 {
			return filepath.Dir(filepath.Dir(r.Files[0]))
		}
	}
	return "."
}
