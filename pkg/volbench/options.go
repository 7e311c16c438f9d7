package volbench

import (
	"github.com/bft-labs/volbench/internal/ports"
	"github.com/bft-labs/volbench/pkg/log"
)

// Mounter attaches volumes by ID.
type Mounter = ports.Mounter

// Clock supplies timestamps for the timed sections.
type Clock = ports.Clock

// ReportRepository persists finished reports.
type ReportRepository = ports.ReportRepository

// Option configures optional behavior of Volbench.
type Option func(*options)

type options struct {
	mounter Mounter
	clock   Clock
	reports ReportRepository
	logger  log.Logger
	handler EventHandler
}

func defaultOptions() options {
	return options{
		clock:  ports.SystemClock{},
		logger: log.NewNoopLogger(),
	}
}

// WithMounter sets the volume backend.
// If not provided, directories on the host file system are used.
func WithMounter(m Mounter) Option {
	return func(o *options) {
		o.mounter = m
	}
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithReportRepository sets where reports are saved. It takes precedence
// over Config.ReportPath.
func WithReportRepository(r ReportRepository) Option {
	return func(o *options) {
		o.reports = r
	}
}

// WithEventHandler sets a handler for run events.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.handler = handler
	}
}
