package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/bft-labs/volbench/internal/digest"
	"github.com/bft-labs/volbench/internal/domain"
	"github.com/bft-labs/volbench/internal/ports"
	"github.com/bft-labs/volbench/internal/transfer"
	"github.com/bft-labs/volbench/pkg/log"
)

// Bench runs the read, digest, write sequence against one volume.
type Bench struct {
	config   Config
	alg      digest.Algorithm
	expect   *domain.Digest
	mounter  ports.Mounter
	clock    ports.Clock
	transfer *transfer.Transfer
	reports   ports.ReportRepository
	logger    log.Logger
	lifecycle *Lifecycle
}

// NewBench validates cfg and wires the dependencies. reports may be nil,
// in which case the report is only returned. emitter may be nil.
func NewBench(
	cfg Config,
	mounter ports.Mounter,
	clock ports.Clock,
	reports ports.ReportRepository,
	logger log.Logger,
	emitter EventEmitter,
) (*Bench, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if mounter == nil {
		return nil, fmt.Errorf("%w: no mounter", domain.ErrInvalidConfig)
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	b := &Bench{
		config:  cfg,
		alg:     digest.Algorithm(cfg.Algorithm),
		mounter: mounter,
		clock:   clock,
		reports:   reports,
		logger:    logger,
		lifecycle: NewLifecycle(logger, emitter),
		transfer: transfer.New(transfer.Config{
			MaxBufferBytes: cfg.MaxBufferBytes,
			Sync:           cfg.Sync,
		}, clock),
	}
	if cfg.ExpectDigest != "" {
		d, err := domain.ParseDigest(cfg.ExpectDigest)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
		}
		b.expect = &d
	}
	return b, nil
}

// State returns where the bench is in its run.
func (b *Bench) State() State {
	return b.lifecycle.State()
}

// Run performs the benchmark. Any failure aborts the run and is returned
// as a *domain.Fault (or wraps one); the partial report is returned
// alongside it. Run never retries and is not interruptible once started:
// ctx is only consulted when saving the report. A Bench runs once; later
// calls return ErrAlreadyRun.
func (b *Bench) Run(ctx context.Context) (domain.Report, error) {
	if err := b.lifecycle.TransitionTo(StateRunning, "run"); err != nil {
		return domain.Report{}, err
	}
	report, err := b.run(ctx)
	if err != nil {
		_ = b.lifecycle.TransitionTo(StateFailed, err.Error())
		return report, err
	}
	_ = b.lifecycle.TransitionTo(StateCompleted, "done")
	return report, nil
}

func (b *Bench) run(ctx context.Context) (domain.Report, error) {
	cfg := b.config
	report := domain.Report{
		Volume:    cfg.Volume,
		Input:     cfg.Input,
		Output:    cfg.Output,
		Algorithm: string(b.alg),
		StartedAt: b.clock.Now(),
	}

	vol, err := b.mounter.Mount(cfg.Volume)
	if err != nil {
		return report, domain.NewFault(domain.PhaseMount, domain.ErrMount, cfg.Volume, 0, err)
	}
	b.logger.Debug("volume mounted", log.String("volume", vol.ID()))

	buf, readSample, err := b.transfer.TimedRead(vol, cfg.Input)
	if err != nil {
		return report, err
	}
	report.Size = uint64(len(buf))
	report.Read = readSample
	b.lifecycle.transferred(domain.PhaseRead, cfg.Input, report.Size, readSample)
	b.logger.Info(fmt.Sprintf("read %dMB in %.2f seconds", report.Megabytes(), readSample.Seconds()),
		log.String("path", cfg.Input),
		log.Uint64("bytes", report.Size),
		log.Bytes("size", report.Size),
		log.Rate("rate", report.ReadRate()),
	)

	sum, err := digest.Sum(b.alg, buf)
	if err != nil {
		return report, domain.NewFault(domain.PhaseDigest, domain.ErrInvalidConfig, cfg.Input, report.Size, err)
	}
	report.Digest = sum
	b.logger.Info(fmt.Sprintf("%s sum for %s: %s", strings.ToUpper(string(b.alg)), cfg.Input, sum.Hex()),
		log.String("algorithm", string(b.alg)),
	)
	if b.expect != nil && sum != *b.expect {
		return report, domain.NewFault(domain.PhaseDigest, domain.ErrDigestMismatch, cfg.Input, report.Size,
			fmt.Errorf("got %s, want %s", sum.Hex(), b.expect.Hex()))
	}

	writeSample, err := b.transfer.TimedWrite(vol, cfg.Output, buf)
	report.Write = writeSample
	if err != nil {
		return report, err
	}
	b.lifecycle.transferred(domain.PhaseWrite, cfg.Output, report.Size, writeSample)
	b.logger.Info(fmt.Sprintf("wrote %dMB in %.2f seconds", report.Megabytes(), writeSample.Seconds()),
		log.String("path", cfg.Output),
		log.Uint64("bytes", report.Size),
		log.Bytes("size", report.Size),
		log.Rate("rate", report.WriteRate()),
		log.Bool("sync", cfg.Sync),
	)

	// Drop the transfer buffer so verify does not hold two copies.
	buf = nil

	if cfg.Verify {
		if err := b.verify(vol, sum); err != nil {
			return report, err
		}
		report.Verified = true
		b.logger.Info("output verified", log.String("path", cfg.Output))
	}

	if b.reports != nil {
		if err := b.reports.Save(ctx, report); err != nil {
			return report, fmt.Errorf("save report: %w", err)
		}
	}
	return report, nil
}

// verify reads the output back and checks it hashes to want.
func (b *Bench) verify(vol ports.Volume, want domain.Digest) error {
	out, sample, err := b.transfer.TimedRead(vol, b.config.Output)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	b.lifecycle.transferred(domain.PhaseVerify, b.config.Output, uint64(len(out)), sample)
	got, err := digest.Sum(b.alg, out)
	if err != nil {
		return domain.NewFault(domain.PhaseVerify, domain.ErrInvalidConfig, b.config.Output, uint64(len(out)), err)
	}
	if got != want {
		return domain.NewFault(domain.PhaseVerify, domain.ErrDigestMismatch, b.config.Output, uint64(len(out)),
			fmt.Errorf("got %s, want %s", got.Hex(), want.Hex()))
	}
	return nil
}
