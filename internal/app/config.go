package app

import (
	"fmt"
	"path"
	"strings"

	"github.com/bft-labs/volbench/internal/digest"
	"github.com/bft-labs/volbench/internal/domain"
)

// Default file locations on the volume under test.
const (
	DefaultInput  = "/testfile.bin"
	DefaultOutput = "/testfile2.bin"
)

// DefaultMaxBufferBytes caps the transfer buffer at 2GiB.
const DefaultMaxBufferBytes = 2 << 30

// Config describes one benchmark run.
type Config struct {
	// Volume identifies the volume to mount. For the file system adapter
	// it is the directory acting as the volume root.
	Volume string `json:"volume"`

	// Input and Output are volume-relative paths.
	Input  string `json:"input"`
	Output string `json:"output"`

	Algorithm      string `json:"algorithm"`
	MaxBufferBytes uint64 `json:"max_buffer_bytes"`

	// Sync flushes the output to the device inside the timed write.
	Sync bool `json:"sync"`

	// Verify reads the output back after the write and compares digests.
	Verify bool `json:"verify"`

	// ExpectDigest, when set, is the hex digest the input must have.
	ExpectDigest string `json:"expect_digest,omitempty"`

	// ReportPath, when set, is where the JSON report is saved.
	ReportPath string `json:"report_path,omitempty"`
}

// DefaultConfig returns a Config with default values. Volume must still
// be set before Validate passes.
func DefaultConfig() Config {
	return Config{
		Input:          DefaultInput,
		Output:         DefaultOutput,
		Algorithm:      string(digest.Default),
		MaxBufferBytes: DefaultMaxBufferBytes,
	}
}

// Validate checks the configuration for errors and normalises fields.
func (c *Config) Validate() error {
	if c.Volume == "" {
		return fmt.Errorf("%w: volume is required", domain.ErrInvalidConfig)
	}
	if c.Input == "" {
		return fmt.Errorf("%w: input is required", domain.ErrInvalidConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output is required", domain.ErrInvalidConfig)
	}
	if path.Clean("/"+c.Input) == path.Clean("/"+c.Output) {
		return fmt.Errorf("%w: input and output must be different files", domain.ErrInvalidConfig)
	}

	alg, err := digest.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	c.Algorithm = string(alg)

	c.ExpectDigest = strings.ToLower(strings.TrimSpace(c.ExpectDigest))
	if c.ExpectDigest != "" {
		if _, err := domain.ParseDigest(c.ExpectDigest); err != nil {
			return fmt.Errorf("%w: expect-digest: %v", domain.ErrInvalidConfig, err)
		}
	}
	return nil
}
