// Package mem implements the volume port in memory, with per-file fault
// injection for exercising every failure path of the benchmark.
package mem

import (
	"errors"
	"fmt"
	"path"
	"sync"

	"github.com/bft-labs/volbench/internal/domain"
	"github.com/bft-labs/volbench/internal/ports"
)

// Fault describes failures to inject for one path. Zero values inject
// nothing.
type Fault struct {
	OpenErr  error
	ReadErr  error
	WriteErr error
	SyncErr  error
	CloseErr error

	// ShortRead, when positive, caps the bytes a single Read returns.
	ShortRead int

	// ShortWrite, when positive, caps the bytes a single Write accepts.
	// The write reports the shorter count without an error, like a device
	// that ran out of space.
	ShortWrite int

	// CorruptWrite flips the low bit of the first byte of every write
	// while reporting success.
	CorruptWrite bool
}

// Mounter hands out pre-built volumes by ID.
type Mounter struct {
	mu      sync.Mutex
	volumes map[string]*Volume
	mounted map[string]bool
}

// NewMounter creates a Mounter that knows about the given volumes.
func NewMounter(volumes ...*Volume) *Mounter {
	m := &Mounter{
		volumes: make(map[string]*Volume, len(volumes)),
		mounted: make(map[string]bool),
	}
	for _, v := range volumes {
		m.volumes[v.id] = v
	}
	return m
}

// Mount returns the volume registered under volumeID.
func (m *Mounter) Mount(volumeID string) (ports.Volume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.volumes[volumeID]
	if !ok {
		return nil, fmt.Errorf("%w: no volume %q", domain.ErrMount, volumeID)
	}
	if m.mounted[volumeID] {
		return nil, fmt.Errorf("%w: %q is already mounted", domain.ErrMount, volumeID)
	}
	m.mounted[volumeID] = true
	return v, nil
}

// Volume is an in-memory set of files.
type Volume struct {
	id string

	mu     sync.Mutex
	files  map[string][]byte
	faults map[string]Fault
	busy   bool
	opens  int
}

// NewVolume creates an empty volume.
func NewVolume(id string) *Volume {
	return &Volume{
		id:     id,
		files:  make(map[string][]byte),
		faults: make(map[string]Fault),
	}
}

func clean(p string) string { return path.Clean("/" + p) }

// Put stores a copy of data at p.
func (v *Volume) Put(p string, data []byte) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.files[clean(p)] = append([]byte(nil), data...)
}

// Get returns a copy of the file at p.
func (v *Volume) Get(p string) ([]byte, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	data, ok := v.files[clean(p)]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// InjectFault arranges for operations on p to fail as described.
func (v *Volume) InjectFault(p string, f Fault) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.faults[clean(p)] = f
}

// Busy reports whether a handle is currently open.
func (v *Volume) Busy() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.busy
}

// Opens returns how many handles have been opened successfully.
func (v *Volume) Opens() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.opens
}

// ID returns the volume identifier.
func (v *Volume) ID() string { return v.id }

// Open opens p in the given mode.
func (v *Volume) Open(p string, mode domain.OpenMode) (ports.FileHandle, error) {
	p = clean(p)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.busy {
		return nil, fmt.Errorf("%w: another file is already open on %s", domain.ErrIO, v.id)
	}
	fault := v.faults[p]
	if fault.OpenErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIO, fault.OpenErr)
	}

	switch mode {
	case domain.ReadExisting:
		if _, ok := v.files[p]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, p)
		}
	case domain.CreateOrTruncate:
		v.files[p] = []byte{}
	default:
		return nil, fmt.Errorf("%w: unknown open mode %d", domain.ErrIO, mode)
	}

	v.busy = true
	v.opens++
	return &handle{vol: v, path: p, mode: mode, fault: fault}, nil
}

type handle struct {
	vol    *Volume
	path   string
	mode   domain.OpenMode
	fault  Fault
	off    int
	closed bool
}

var errClosed = errors.New("file already closed")

func (h *handle) Size() (uint64, error) {
	if h.closed {
		return 0, fmt.Errorf("%w: %v", domain.ErrIO, errClosed)
	}
	if h.mode != domain.ReadExisting {
		return 0, fmt.Errorf("%w: size of a file opened for %s", domain.ErrIO, h.mode)
	}
	h.vol.mu.Lock()
	defer h.vol.mu.Unlock()
	return uint64(len(h.vol.files[h.path])), nil
}

func (h *handle) Read(buf []byte) (int, error) {
	if h.closed {
		return 0, fmt.Errorf("%w: %v", domain.ErrIO, errClosed)
	}
	if h.mode != domain.ReadExisting {
		return 0, fmt.Errorf("%w: read from a file opened for %s", domain.ErrIO, h.mode)
	}
	if h.fault.ReadErr != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrIO, h.fault.ReadErr)
	}
	if h.fault.ShortRead > 0 && len(buf) > h.fault.ShortRead {
		buf = buf[:h.fault.ShortRead]
	}

	h.vol.mu.Lock()
	defer h.vol.mu.Unlock()
	data := h.vol.files[h.path]
	if h.off >= len(data) {
		return 0, nil
	}
	n := copy(buf, data[h.off:])
	h.off += n
	return n, nil
}

func (h *handle) Write(buf []byte) (int, error) {
	if h.closed {
		return 0, fmt.Errorf("%w: %v", domain.ErrIO, errClosed)
	}
	if h.mode != domain.CreateOrTruncate {
		return 0, fmt.Errorf("%w: write to a file opened for %s", domain.ErrIO, h.mode)
	}
	if h.fault.WriteErr != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrIO, h.fault.WriteErr)
	}
	if h.fault.ShortWrite > 0 && len(buf) > h.fault.ShortWrite {
		buf = buf[:h.fault.ShortWrite]
	}

	data := buf
	if h.fault.CorruptWrite && len(buf) > 0 {
		data = append([]byte(nil), buf...)
		data[0] ^= 0x01
	}

	h.vol.mu.Lock()
	defer h.vol.mu.Unlock()
	h.vol.files[h.path] = append(h.vol.files[h.path], data...)
	return len(buf), nil
}

func (h *handle) Sync() error {
	if h.closed {
		return fmt.Errorf("%w: %v", domain.ErrIO, errClosed)
	}
	if h.fault.SyncErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, h.fault.SyncErr)
	}
	return nil
}

// Close always releases the handle, even when a close fault is injected.
func (h *handle) Close() error {
	if h.closed {
		return fmt.Errorf("%w: %v", domain.ErrIO, errClosed)
	}
	h.closed = true

	h.vol.mu.Lock()
	h.vol.busy = false
	h.vol.mu.Unlock()

	if h.fault.CloseErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, h.fault.CloseErr)
	}
	return nil
}
