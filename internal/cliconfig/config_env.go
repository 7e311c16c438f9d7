package cliconfig

import "os"

// EnvPrefix prefixes every environment variable volbench reads.
const EnvPrefix = "VOLBENCH_"

// ApplyEnvConfig applies configuration from environment variables (VOLBENCH_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if a boolean variable is not a valid strconv.ParseBool value.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("volume", os.Getenv(EnvPrefix+"VOLUME"), &cfg.Volume)
	s.setString("input", os.Getenv(EnvPrefix+"INPUT"), &cfg.Input)
	s.setString("output", os.Getenv(EnvPrefix+"OUTPUT"), &cfg.Output)
	s.setString("algorithm", os.Getenv(EnvPrefix+"ALGORITHM"), &cfg.Algorithm)
	s.setString("max-buffer", os.Getenv(EnvPrefix+"MAX_BUFFER"), &cfg.MaxBuffer)
	s.setString("expect-digest", os.Getenv(EnvPrefix+"EXPECT_DIGEST"), &cfg.ExpectDigest)
	s.setString("report", os.Getenv(EnvPrefix+"REPORT"), &cfg.Report)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setBoolFromString("sync", os.Getenv(EnvPrefix+"SYNC"), &cfg.Sync); err != nil {
		return err
	}
	return s.setBoolFromString("verify", os.Getenv(EnvPrefix+"VERIFY"), &cfg.Verify)
}
