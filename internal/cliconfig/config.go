package cliconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/bft-labs/volbench/internal/app"
)

// Config holds CLI configuration for volbench.
type Config struct {
	Volume string
	Input  string
	Output string

	Algorithm string

	// MaxBuffer is a human size such as "2GiB" or "512MB".
	MaxBuffer string

	Sync         bool
	Verify       bool
	ExpectDigest string
	Report       string
	LogLevel     string

	// Derived during Validate.
	maxBufferBytes uint64
	level          zerolog.Level
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Input:     app.DefaultInput,
		Output:    app.DefaultOutput,
		Algorithm: "sha256",
		MaxBuffer: "2GiB",
		LogLevel:  "info",
	}
}

// Validate checks the configuration for errors and sets derived values.
func (c *Config) Validate() error {
	if c.Volume == "" {
		return fmt.Errorf("volume is required")
	}

	if strings.TrimSpace(c.MaxBuffer) == "" || c.MaxBuffer == "0" {
		c.maxBufferBytes = 0
	} else {
		n, err := humanize.ParseBytes(c.MaxBuffer)
		if err != nil {
			return fmt.Errorf("parse max-buffer: %w", err)
		}
		c.maxBufferBytes = n
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return fmt.Errorf("parse log-level: %w", err)
	}
	c.level = lvl

	bc := c.Bench()
	return bc.Validate()
}

// Bench converts the CLI configuration into a benchmark configuration.
// Call Validate first so derived values are set.
func (c *Config) Bench() app.Config {
	return app.Config{
		Volume:         c.Volume,
		Input:          c.Input,
		Output:         c.Output,
		Algorithm:      c.Algorithm,
		MaxBufferBytes: c.maxBufferBytes,
		Sync:           c.Sync,
		Verify:         c.Verify,
		ExpectDigest:   c.ExpectDigest,
		ReportPath:     c.Report,
	}
}

// Level returns the parsed log level.
func (c *Config) Level() zerolog.Level {
	return c.level
}

// MaxBufferBytes returns the parsed buffer cap; zero means uncapped.
func (c *Config) MaxBufferBytes() uint64 {
	return c.maxBufferBytes
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string with strconv.ParseBool and sets the
// destination. Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
