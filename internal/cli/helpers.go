package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Davincible/cryptobench/internal/validation"
	"github.com/Davincible/cryptobench/pkg/config"
	"github.com/Davincible/cryptobench/pkg/crypto/aes"
)

// Ciphertext text formats accepted by the aes commands.
const (
	formatHex     = "hex"
	formatDecimal = "decimal"
	formatAuto    = "auto"
)

// readSecret reads a line from the terminal without echo, falling back to a
// plain read when stdin is not a TTY.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	if cmd.InOrStdin() == os.Stdin && term.IsTerminal(int(syscall.Stdin)) {
		secret, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readInput returns the inline value when set, else the contents of file,
// else everything on stdin.
func readInput(cmd *cobra.Command, inline, file string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

// writeOutput stores data in file with owner-only permissions, or prints it.
func writeOutput(cmd *cobra.Command, file string, data []byte) error {
	if file == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	if err := os.WriteFile(file, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Output saved to %s\n", file)
	return nil
}

func outputJSON(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func jsonRequested(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}

// loadConfig resolves the --config flag and applies the UI settings.
func loadConfig(cmd *cobra.Command) (*config.ConfigManager, error) {
	path, _ := cmd.Flags().GetString("config")

	cm, err := config.NewConfigManager(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if !cm.GetConfig().UI.UseColor {
		color.NoColor = true
	}
	return cm, nil
}

// detectFormat guesses whether ciphertext text is hex or decimal byte values.
func detectFormat(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}

	fields := strings.Fields(s)
	if len(fields) == 1 && validation.ValidateHex(s) == nil {
		// One block is 32 hex digits; a lone decimal byte value is at most 3.
		digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		if len(digits)%(2*aes.BlockSize) == 0 {
			return formatHex
		}
	}

	for _, f := range fields {
		if validation.ValidateDecimal(f) != nil || strings.HasPrefix(f, "0x") {
			return "unknown"
		}
	}
	return formatDecimal
}

// printField prints a labelled value the same way across commands.
func printField(w io.Writer, label, value string) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(w, "%s:\n", label)
	fmt.Fprintf(w, "  %s\n", value)
}
