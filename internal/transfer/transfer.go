// Package transfer performs the timed full-file read and write of a
// benchmark run and owns the transfer buffer between them.
package transfer

import (
	"errors"

	"github.com/bft-labs/volbench/internal/domain"
	"github.com/bft-labs/volbench/internal/ports"
)

// Config tunes a Transfer.
type Config struct {
	// MaxBufferBytes caps the transfer buffer. Zero means no cap beyond
	// what the runtime can allocate.
	MaxBufferBytes uint64

	// Sync flushes the written file to the device inside the timed window.
	Sync bool
}

// Transfer times whole-file reads and writes against a Volume.
// It is not safe for concurrent use; a run is strictly sequential.
type Transfer struct {
	cfg   Config
	clock ports.Clock
}

// New creates a Transfer. A nil clock means the system clock.
func New(cfg Config, clock ports.Clock) *Transfer {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Transfer{cfg: cfg, clock: clock}
}

// TimedRead reads the whole of path into a freshly allocated buffer sized
// to the file. The returned sample covers only the read call.
func (t *Transfer) TimedRead(vol ports.Volume, path string) ([]byte, domain.TimingSample, error) {
	var sample domain.TimingSample

	h, err := vol.Open(path, domain.ReadExisting)
	if err != nil {
		return nil, sample, domain.NewFault(domain.PhaseOpen, kindOf(err), path, 0, err)
	}

	size, err := h.Size()
	if err != nil {
		h.Close()
		return nil, sample, domain.NewFault(domain.PhaseSize, kindOf(err), path, 0, err)
	}

	buf, err := Allocate(size, t.cfg.MaxBufferBytes)
	if err != nil {
		h.Close()
		return nil, sample, domain.NewFault(domain.PhaseAllocate, domain.ErrAllocation, path, size, err)
	}

	sample.Start = t.clock.Now()
	n, err := h.Read(buf)
	sample.End = t.clock.Now()
	if err != nil {
		h.Close()
		return nil, sample, domain.NewFault(domain.PhaseRead, kindOf(err), path, size, err)
	}

	if err := h.Close(); err != nil {
		return nil, sample, domain.NewFault(domain.PhaseClose, kindOf(err), path, size, err)
	}
	if uint64(n) != size {
		return nil, sample, domain.NewSizeMismatch(domain.PhaseRead, path, size, uint64(n))
	}
	return buf, sample, nil
}

// TimedWrite creates or truncates path and writes all of buf to it.
// The returned sample covers the write call, plus the sync when enabled.
func (t *Transfer) TimedWrite(vol ports.Volume, path string, buf []byte) (domain.TimingSample, error) {
	var sample domain.TimingSample
	size := uint64(len(buf))

	h, err := vol.Open(path, domain.CreateOrTruncate)
	if err != nil {
		return sample, domain.NewFault(domain.PhaseOpen, kindOf(err), path, size, err)
	}

	sample.Start = t.clock.Now()
	n, err := h.Write(buf)
	if err != nil {
		sample.End = t.clock.Now()
		h.Close()
		return sample, domain.NewFault(domain.PhaseWrite, kindOf(err), path, size, err)
	}
	if t.cfg.Sync {
		if err := h.Sync(); err != nil {
			sample.End = t.clock.Now()
			h.Close()
			return sample, domain.NewFault(domain.PhaseSync, kindOf(err), path, size, err)
		}
	}
	sample.End = t.clock.Now()

	if err := h.Close(); err != nil {
		return sample, domain.NewFault(domain.PhaseClose, kindOf(err), path, size, err)
	}
	if uint64(n) != size {
		return sample, domain.NewSizeMismatch(domain.PhaseWrite, path, size, uint64(n))
	}
	return sample, nil
}

// kindOf picks the fault kind an adapter error carries, defaulting to ErrIO.
func kindOf(err error) error {
	for _, kind := range []error{domain.ErrNotFound, domain.ErrMount, domain.ErrAllocation} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return domain.ErrIO
}
