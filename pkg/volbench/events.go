package volbench

import (
	"time"

	"github.com/bft-labs/volbench/internal/app"
	"github.com/bft-labs/volbench/internal/domain"
)

// State is where a Volbench is in its run.
type State = app.State

const (
	StateIdle      = app.StateIdle
	StateRunning   = app.StateRunning
	StateCompleted = app.StateCompleted
	StateFailed    = app.StateFailed
)

// StateChangeEvent is delivered when the run changes state. Reason holds
// the error text for StateFailed.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// TransferEvent is delivered after each timed read or write completes.
// Phase is "read", "write" or "verify".
type TransferEvent struct {
	Phase          string
	Path           string
	Bytes          uint64
	Elapsed        time.Duration
	BytesPerSecond float64
}

// EventHandler receives progress from a run. Methods are called
// synchronously from the goroutine calling Run.
type EventHandler interface {
	OnStateChange(StateChangeEvent)
	OnTransfer(TransferEvent)
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interface.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	e.handler.OnStateChange(StateChangeEvent{
		Previous: previous,
		Current:  current,
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnTransfer(phase domain.Phase, path string, size uint64, sample domain.TimingSample) {
	e.handler.OnTransfer(TransferEvent{
		Phase:          string(phase),
		Path:           path,
		Bytes:          size,
		Elapsed:        sample.Elapsed(),
		BytesPerSecond: sample.Rate(size),
	})
}
