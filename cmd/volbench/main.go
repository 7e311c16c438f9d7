package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/volbench/internal/cliconfig"
	vlog "github.com/bft-labs/volbench/pkg/log"
	"github.com/bft-labs/volbench/pkg/volbench"
)

const helpDescription = `
Measure how fast a storage volume reads and writes a file.

volbench mounts the volume, reads the input file into memory, hashes it,
writes the same bytes to the output file and reports both timings. Any
failure stops the run and exits with status 1.

Highlights:
  - SHA-256 or BLAKE3 digests, optionally checked against a known value.
  - Optional fsync inside the timed write and read-back verification.
  - Configure via file, env (VOLBENCH_*), or flags; save a JSON report.
`

var exampleUsage = strings.TrimSpace(`
  volbench --volume /mnt/sd
  volbench --volume /mnt/sd --input /big.bin --output /big-copy.bin --sync --verify
  volbench --config $HOME/.volbench/config.toml --report run.json
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:           "volbench [volume]",
		Short:         "Benchmark reading, hashing and writing a file on a storage volume",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// A positional volume counts as the --volume flag.
			if len(args) == 1 && !changed["volume"] {
				cfg.Volume = args[0]
				changed["volume"] = true
			}

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return fmt.Errorf("env config: %w", err)
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := log.Level(cfg.Level())
			logger.Info().Interface("config", cfg.Bench()).Msg("configuration")

			v, err := volbench.New(cfg.Bench(), volbench.WithLogger(vlog.NewZerologAdapterWithLogger(logger)))
			if err != nil {
				return fmt.Errorf("create volbench: %w", err)
			}

			report, err := v.Run(context.Background())
			if err != nil {
				return err
			}
			logger.Info().
				Str("digest", report.Digest.Hex()).
				Str("read", humanize.IBytes(uint64(report.ReadRate()))+"/s").
				Str("write", humanize.IBytes(uint64(report.WriteRate()))+"/s").
				Bool("verified", report.Verified).
				Msg("done")
			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.volbench/config.toml)")
	root.Flags().StringVar(&cfg.Volume, "volume", cfg.Volume, "volume to mount (a directory for the file system backend)")
	root.Flags().StringVar(&cfg.Input, "input", cfg.Input, "volume-relative path of the file to read")
	root.Flags().StringVar(&cfg.Output, "output", cfg.Output, "volume-relative path of the file to write")
	root.Flags().StringVar(&cfg.Algorithm, "algorithm", cfg.Algorithm, "digest algorithm (sha256 or blake3)")
	root.Flags().StringVar(&cfg.MaxBuffer, "max-buffer", cfg.MaxBuffer, "largest input accepted, e.g. 512MiB (0 for no limit)")
	root.Flags().BoolVar(&cfg.Sync, "sync", cfg.Sync, "fsync the output inside the timed write")
	root.Flags().BoolVar(&cfg.Verify, "verify", cfg.Verify, "read the output back and compare digests")
	root.Flags().StringVar(&cfg.ExpectDigest, "expect-digest", cfg.ExpectDigest, "hex digest the input must match")
	root.Flags().StringVar(&cfg.Report, "report", cfg.Report, "write a JSON report to this path")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("volbench")
		os.Exit(1)
	}
}
