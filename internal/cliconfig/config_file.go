package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML keys. Booleans are pointers so an
// absent key leaves the current value alone.
type FileConfig struct {
	Volume       string `toml:"volume"`
	Input        string `toml:"input"`
	Output       string `toml:"output"`
	Algorithm    string `toml:"algorithm"`
	MaxBuffer    string `toml:"max_buffer"`
	Sync         *bool  `toml:"sync"`
	Verify       *bool  `toml:"verify"`
	ExpectDigest string `toml:"expect_digest"`
	Report       string `toml:"report"`
	LogLevel     string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.volbench/config.toml, or "" if the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".volbench", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("volume", fc.Volume, &cfg.Volume)
	s.setString("input", fc.Input, &cfg.Input)
	s.setString("output", fc.Output, &cfg.Output)
	s.setString("algorithm", fc.Algorithm, &cfg.Algorithm)
	s.setString("max-buffer", fc.MaxBuffer, &cfg.MaxBuffer)
	s.setString("expect-digest", fc.ExpectDigest, &cfg.ExpectDigest)
	s.setString("report", fc.Report, &cfg.Report)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setBool("sync", fc.Sync, &cfg.Sync)
	s.setBool("verify", fc.Verify, &cfg.Verify)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
