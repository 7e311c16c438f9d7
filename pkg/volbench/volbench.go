package volbench

import (
	"context"

	"github.com/bft-labs/volbench/internal/adapters/fs"
	"github.com/bft-labs/volbench/internal/app"
	"github.com/bft-labs/volbench/internal/domain"
	"github.com/bft-labs/volbench/internal/ports"
)

// Config describes one benchmark run.
type Config = app.Config

// Report is the outcome of a run.
type Report = domain.Report

// Fault is the error returned for a failed phase. Use errors.As to
// inspect it.
type Fault = domain.Fault

// Failure kinds, for use with errors.Is.
var (
	ErrMount          = domain.ErrMount
	ErrNotFound       = domain.ErrNotFound
	ErrIO             = domain.ErrIO
	ErrAllocation     = domain.ErrAllocation
	ErrSizeMismatch   = domain.ErrSizeMismatch
	ErrDigestMismatch = domain.ErrDigestMismatch
	ErrAlreadyRun     = domain.ErrAlreadyRun
	ErrInvalidConfig  = domain.ErrInvalidConfig
)

// DefaultConfig returns a Config with default values.
// Volume must be set before calling New.
func DefaultConfig() Config {
	return app.DefaultConfig()
}

// Volbench is a configured benchmark. It runs once; create a new
// instance to benchmark again.
type Volbench struct {
	config Config
	bench  *app.Bench
}

// New creates a Volbench with the given configuration.
// Returns an error if configuration is invalid.
func New(cfg Config, opts ...Option) (*Volbench, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.mounter == nil {
		o.mounter = fs.NewMounter()
	}

	var reports ports.ReportRepository = o.reports
	if reports == nil && cfg.ReportPath != "" {
		reports = fs.NewReportFileRepository(cfg.ReportPath)
	}

	var emitter app.EventEmitter
	if o.handler != nil {
		emitter = &eventEmitterWrapper{handler: o.handler}
	}

	bench, err := app.NewBench(cfg, o.mounter, o.clock, reports, o.logger, emitter)
	if err != nil {
		return nil, err
	}
	return &Volbench{config: cfg, bench: bench}, nil
}

// Config returns the configuration the instance was created with.
func (v *Volbench) Config() Config {
	return v.config
}

// Status returns the current run state.
func (v *Volbench) Status() State {
	return v.bench.State()
}

// Run performs the benchmark. The returned report is filled in as far as
// the run got, even when err is non-nil.
func (v *Volbench) Run(ctx context.Context) (Report, error) {
	return v.bench.Run(ctx)
}
