// Package config provides configuration management for the cryptobench CLI
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/cryptobench/pkg/crypto/aes"
	"github.com/Davincible/cryptobench/pkg/crypto/ecc"
	"github.com/Davincible/cryptobench/pkg/crypto/rsa"
)

// Environment variables consulted by the configuration layer.
const (
	EnvConfigPath = "CRYPTOBENCH_CONFIG"
	EnvPlaintext  = "CRYPTOBENCH_PLAINTEXT"
	EnvOutputDir  = "CRYPTOBENCH_OUTPUT"
)

// Config represents the main configuration structure
type Config struct {
	Version string      `json:"version"`
	Bench   BenchConfig `json:"bench"`
	UI      UIConfig    `json:"ui"`
}

// BenchConfig controls what the benchmark harness runs and where it writes
type BenchConfig struct {
	PlaintextPath   string `json:"plaintext_path"`   // Default: test/plaintext.txt
	OutputDir       string `json:"output_dir"`       // Default: test
	AESKeySizes     []int  `json:"aes_key_sizes"`    // Default: 128, 192, 256
	RSAKeySizes     []int  `json:"rsa_key_sizes"`    // Default: 128, 192, 256
	ECCKeySizes     []int  `json:"ecc_key_sizes"`    // Default: 128, 192, 256
	PrimalityRounds int    `json:"primality_rounds"` // Miller-Rabin rounds for RSA primes
	HistoryDir      string `json:"history_dir"`      // Default: "history" next to the config file
}

// UIConfig contains user interface settings
type UIConfig struct {
	UseColor bool `json:"use_color"`
}

// ConfigManager manages configuration loading and saving
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a manager for path, or for the default location when
// path is empty. A missing file yields the default configuration; it is not
// written until SaveConfig is called.
func NewConfigManager(path string) (*ConfigManager, error) {
	if path == "" {
		var err error
		path, err = getConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cm := &ConfigManager{configPath: path}
	if err := cm.LoadConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cm.config = DefaultConfig()
	}

	cm.config.ApplyEnv()
	return cm, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	sizes := func() []int { return []int{128, 192, 256} }
	return &Config{
		Version: "1.0.0",
		Bench: BenchConfig{
			PlaintextPath:   filepath.Join("test", "plaintext.txt"),
			OutputDir:       "test",
			AESKeySizes:     sizes(),
			RSAKeySizes:     sizes(),
			ECCKeySizes:     sizes(),
			PrimalityRounds: 20,
		},
		UI: UIConfig{
			UseColor: true,
		},
	}
}

// ApplyEnv overrides file settings with CRYPTOBENCH_* environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvPlaintext); v != "" {
		c.Bench.PlaintextPath = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Bench.OutputDir = v
	}
}

// Validate checks every configured size against what the packages support
func (c *Config) Validate() error {
	b := c.Bench
	if b.PlaintextPath == "" {
		return fmt.Errorf("plaintext path cannot be empty")
	}
	if b.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	for _, bits := range b.AESKeySizes {
		if _, err := aes.ParseKeySize(bits); err != nil {
			return fmt.Errorf("aes_key_sizes: %w", err)
		}
	}
	for _, bits := range b.RSAKeySizes {
		if bits < rsa.MinBits {
			return fmt.Errorf("rsa_key_sizes: %d is below the minimum of %d bits", bits, rsa.MinBits)
		}
	}
	for _, bits := range b.ECCKeySizes {
		if _, err := ecc.CurveForBits(bits); err != nil {
			return fmt.Errorf("ecc_key_sizes: %w", err)
		}
	}
	if b.PrimalityRounds < 1 {
		return fmt.Errorf("primality_rounds must be positive, got %d", b.PrimalityRounds)
	}
	return nil
}

// LoadConfig loads the configuration from disk
func (cm *ConfigManager) LoadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	cm.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (cm *ConfigManager) SaveConfig() error {
	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig updates the configuration
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// Path returns the file the manager reads and writes
func (cm *ConfigManager) Path() string {
	return cm.configPath
}

// HistoryDir returns where saved benchmark sessions live
func (cm *ConfigManager) HistoryDir() string {
	if dir := cm.config.Bench.HistoryDir; dir != "" {
		return dir
	}
	return filepath.Join(filepath.Dir(cm.configPath), "history")
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	if customPath := os.Getenv(EnvConfigPath); customPath != "" {
		return customPath, nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "cryptobench", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "cryptobench", "config.json"), nil
}
