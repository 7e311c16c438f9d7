// Package volbench measures how fast a storage volume reads and writes a
// file and checks the contents survive the round trip.
//
// Example usage:
//
//	cfg := volbench.DefaultConfig()
//	cfg.Volume = "/mnt/sd"
//	cfg.Verify = true
//	report, err := volbench.Run(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Digest, report.ReadRate())
//
// For custom mounters, clocks or loggers use pkg/volbench.
package volbench

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bft-labs/volbench/internal/cliconfig"
	"github.com/bft-labs/volbench/pkg/log"
	"github.com/bft-labs/volbench/pkg/volbench"
)

// Config holds the configuration for one benchmark run.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = volbench.Config

// Report is the outcome of a run.
type Report = volbench.Report

// Run benchmarks cfg.Volume on the host file system, logging progress to
// the package-level console logger. It returns once the run completes or
// fails; the report is filled in as far as the run got.
func Run(ctx context.Context, cfg Config) (Report, error) {
	v, err := volbench.New(cfg, volbench.WithLogger(log.NewZerologAdapterWithLogger(Logger())))
	if err != nil {
		return Report{}, err
	}
	return v.Run(ctx)
}

// DefaultConfig returns a Config with sensible default values.
// At minimum, you must set Volume before calling Run.
func DefaultConfig() Config {
	return volbench.DefaultConfig()
}

// Logger returns the package-level zerolog logger used by the command.
func Logger() zerolog.Logger {
	return cliconfig.Logger()
}
