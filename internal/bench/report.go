package bench

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReadPlaintext returns the first line of the file at path with surrounding
// whitespace removed.
func ReadPlaintext(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plaintext: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read plaintext: %w", err)
		}
		return []byte{}, nil
	}

	return []byte(strings.TrimSpace(scanner.Text())), nil
}

// formatSeconds renders d the way every report does: "0.000123456 seconds".
func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.9f seconds", d.Seconds())
}

// report is an ordered list of "name = value" sections followed by timing lines.
type report struct {
	fields []string
	times  []string
}

func (rp *report) field(name, value string) {
	rp.fields = append(rp.fields, name+" = "+value)
}

func (rp *report) timing(label string, d time.Duration) {
	rp.times = append(rp.times, label+": "+formatSeconds(d))
}

func (rp *report) String() string {
	parts := append([]string(nil), rp.fields...)
	if len(rp.times) > 0 {
		parts = append(parts, strings.Join(rp.times, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// write stores the report at <OutputDir>/<dir>/<name> and returns the path.
func (r *Runner) write(dir, name string, rp *report) (string, error) {
	target := filepath.Join(r.opts.OutputDir, dir)
	if err := os.MkdirAll(target, 0700); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(target, name)
	if err := os.WriteFile(path, []byte(rp.String()), 0600); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	r.logger.Debug("Wrote report", "path", path)
	return path, nil
}

// writePair writes the ciphertext and decrypted reports for one run.
func (r *Runner) writePair(algorithm string, bits int, enc, dec *report) ([]string, error) {
	dir := strings.ToLower(algorithm)

	encPath, err := r.write(dir, fmt.Sprintf("ciphertext-%s-%d.txt", dir, bits), enc)
	if err != nil {
		return nil, err
	}
	decPath, err := r.write(dir, fmt.Sprintf("decrypted-%s-%d.txt", dir, bits), dec)
	if err != nil {
		return nil, err
	}
	return []string{encPath, decPath}, nil
}
