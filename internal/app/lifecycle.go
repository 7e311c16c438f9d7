package app

import (
	"sync"

	"github.com/bft-labs/volbench/internal/domain"
	"github.com/bft-labs/volbench/pkg/log"
)

// State is where a Bench is in its single run.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// EventEmitter receives progress from a run. Calls are made synchronously
// from the goroutine executing Run.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
	OnTransfer(phase domain.Phase, path string, size uint64, sample domain.TimingSample)
}

// Lifecycle guards the Idle -> Running -> Completed|Failed sequence.
// A bench never returns to Idle.
type Lifecycle struct {
	mu      sync.RWMutex
	state   State
	logger  log.Logger
	emitter EventEmitter
}

// NewLifecycle creates a lifecycle in StateIdle. emitter may be nil.
func NewLifecycle(logger log.Logger, emitter EventEmitter) *Lifecycle {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Lifecycle{
		state:   StateIdle,
		logger:  logger,
		emitter: emitter,
	}
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo moves to newState, or returns ErrAlreadyRun if the move is
// not allowed from the current state.
func (l *Lifecycle) TransitionTo(newState State, reason string) error {
	l.mu.Lock()
	oldState := l.state

	valid := false
	switch oldState {
	case StateIdle:
		valid = newState == StateRunning
	case StateRunning:
		valid = newState == StateCompleted || newState == StateFailed
	}
	if !valid {
		l.mu.Unlock()
		return domain.ErrAlreadyRun
	}

	l.state = newState
	l.mu.Unlock()

	// Emit outside of the lock.
	if l.emitter != nil {
		l.emitter.OnStateChange(oldState, newState, reason)
	}

	l.logger.Debug("state transition",
		log.String("from", oldState.String()),
		log.String("to", newState.String()),
		log.String("reason", reason),
	)
	return nil
}

// transferred reports a completed timed section to the emitter.
func (l *Lifecycle) transferred(phase domain.Phase, path string, size uint64, sample domain.TimingSample) {
	if l.emitter != nil {
		l.emitter.OnTransfer(phase, path, size, sample)
	}
}
