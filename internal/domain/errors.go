package domain

import "errors"

// Fault kinds. A *Fault unwraps to exactly one of these, so callers can
// match the category with errors.Is without caring about the cause.
var (
	// ErrMount is returned when the volume is absent, unformatted or
	// already mounted.
	ErrMount = errors.New("volbench: mount failed")

	// ErrNotFound is returned when a file opened for reading does not exist.
	ErrNotFound = errors.New("volbench: file not found")

	// ErrIO covers device-level failures of open, read, write, sync and close.
	ErrIO = errors.New("volbench: i/o error")

	// ErrAllocation is returned when the transfer buffer cannot be allocated.
	ErrAllocation = errors.New("volbench: buffer allocation failed")

	// ErrSizeMismatch is returned when an I/O operation transferred a
	// different number of bytes than the file's declared size.
	ErrSizeMismatch = errors.New("volbench: size mismatch")

	// ErrDigestMismatch is returned when a digest differs from the one
	// it is checked against.
	ErrDigestMismatch = errors.New("volbench: digest mismatch")

	// ErrAlreadyRun is returned when a benchmark that has already started
	// is run again.
	ErrAlreadyRun = errors.New("volbench: benchmark already run")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("volbench: invalid configuration")
)
