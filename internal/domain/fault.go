package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Phase names the step of a run that failed.
type Phase string

const (
	PhaseMount    Phase = "mount"
	PhaseOpen     Phase = "open"
	PhaseSize     Phase = "size"
	PhaseAllocate Phase = "allocate"
	PhaseRead     Phase = "read"
	PhaseDigest   Phase = "digest"
	PhaseWrite    Phase = "write"
	PhaseSync     Phase = "sync"
	PhaseClose    Phase = "close"
	PhaseVerify   Phase = "verify"
)

// Fault is a fatal failure of one phase of a run.
type Fault struct {
	// Phase is the step that failed.
	Phase Phase

	// Path is the volume-relative file (or volume ID for mount faults).
	Path string

	// Size is the number of bytes the phase expected to move.
	Size uint64

	// Got is the number of bytes actually moved. Only meaningful for
	// ErrSizeMismatch.
	Got uint64

	// Kind is one of the sentinel errors in this package.
	Kind error

	// Err is the underlying cause, if any.
	Err error
}

// NewFault builds a Fault for the given phase and target.
func NewFault(phase Phase, kind error, path string, size uint64, cause error) *Fault {
	return &Fault{Phase: phase, Path: path, Size: size, Kind: kind, Err: cause}
}

// NewSizeMismatch builds the fault raised when got bytes moved instead of want.
func NewSizeMismatch(phase Phase, path string, want, got uint64) *Fault {
	return &Fault{Phase: phase, Path: path, Size: want, Got: got, Kind: ErrSizeMismatch}
}

func (f *Fault) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", f.Phase, f.Path)
	if f.Kind == ErrSizeMismatch {
		fmt.Fprintf(&b, ": transferred %d of %d bytes", f.Got, f.Size)
	} else if f.Size > 0 {
		fmt.Fprintf(&b, " (%d bytes)", f.Size)
	}
	// Adapters usually wrap the kind into the cause already.
	if f.Kind != nil && f.Kind != ErrSizeMismatch && !errors.Is(f.Err, f.Kind) {
		fmt.Fprintf(&b, ": %v", f.Kind)
	}
	if f.Err != nil {
		fmt.Fprintf(&b, ": %v", f.Err)
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (f *Fault) Unwrap() []error {
	errs := make([]error, 0, 2)
	if f.Kind != nil {
		errs = append(errs, f.Kind)
	}
	if f.Err != nil {
		errs = append(errs, f.Err)
	}
	return errs
}
