// Package fs implements the volume and report ports on the host file system.
package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/bft-labs/volbench/internal/domain"
	"github.com/bft-labs/volbench/internal/ports"
)

// Mounter mounts directories as volumes. A directory can be mounted once
// per Mounter.
type Mounter struct {
	mu      sync.Mutex
	mounted map[string]bool
}

// NewMounter creates a Mounter with nothing mounted.
func NewMounter() *Mounter {
	return &Mounter{mounted: make(map[string]bool)}
}

// Mount treats volumeID as the root directory of the volume.
func (m *Mounter) Mount(volumeID string) (ports.Volume, error) {
	if volumeID == "" {
		return nil, fmt.Errorf("%w: empty volume id", domain.ErrMount)
	}
	root, err := filepath.Abs(volumeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMount, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mounted[root] {
		return nil, fmt.Errorf("%w: %s is already mounted", domain.ErrMount, root)
	}

	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMount, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrMount, root)
	}

	m.mounted[root] = true
	return &Volume{id: volumeID, root: root}, nil
}

// Volume is a directory on the host file system.
type Volume struct {
	id   string
	root string

	mu   sync.Mutex
	busy bool
}

// ID returns the identifier the volume was mounted with.
func (v *Volume) ID() string { return v.id }

// Root returns the absolute directory backing the volume.
func (v *Volume) Root() string { return v.root }

// Resolve maps a volume-relative path to a host path inside the root.
// Paths that try to climb out of the root (via .. or symlinks) are
// clamped to it.
func (v *Volume) Resolve(path string) (string, error) {
	return securejoin.SecureJoin(v.root, path)
}

// Open opens path in the given mode. Only one handle may be open at a time.
func (v *Volume) Open(path string, mode domain.OpenMode) (ports.FileHandle, error) {
	full, err := v.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %v", domain.ErrIO, path, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.busy {
		return nil, fmt.Errorf("%w: another file is already open on %s", domain.ErrIO, v.id)
	}

	var f *os.File
	switch mode {
	case domain.ReadExisting:
		f, err = os.Open(full)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", domain.ErrNotFound, err)
		}
	case domain.CreateOrTruncate:
		f, err = os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	default:
		return nil, fmt.Errorf("%w: unknown open mode %d", domain.ErrIO, mode)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIO, err)
	}

	if mode == domain.ReadExisting {
		fi, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %v", domain.ErrIO, err)
		}
		if !fi.Mode().IsRegular() {
			f.Close()
			return nil, fmt.Errorf("%w: %s is not a regular file", domain.ErrIO, path)
		}
	}

	v.busy = true
	return &fileHandle{vol: v, f: f, mode: mode}, nil
}

func (v *Volume) release() {
	v.mu.Lock()
	v.busy = false
	v.mu.Unlock()
}

type fileHandle struct {
	vol    *Volume
	f      *os.File
	mode   domain.OpenMode
	closed bool
}

func (h *fileHandle) Size() (uint64, error) {
	if h.closed {
		return 0, fmt.Errorf("%w: %v", domain.ErrIO, os.ErrClosed)
	}
	if h.mode != domain.ReadExisting {
		return 0, fmt.Errorf("%w: size of a file opened for %s", domain.ErrIO, h.mode)
	}
	fi, err := h.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return uint64(fi.Size()), nil
}

// Read keeps reading until buf is full or the file ends, so a short count
// always means end of file.
func (h *fileHandle) Read(buf []byte) (int, error) {
	n, err := io.ReadFull(h.f, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, nil
	}
	if err != nil {
		return n, fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return n, nil
}

func (h *fileHandle) Write(buf []byte) (int, error) {
	n, err := h.f.Write(buf)
	if err != nil {
		return n, fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return n, nil
}

func (h *fileHandle) Sync() error {
	if err := h.f.Sync(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return nil
}

func (h *fileHandle) Close() error {
	if h.closed {
		return fmt.Errorf("%w: %v", domain.ErrIO, os.ErrClosed)
	}
	h.closed = true
	h.vol.release()
	if err := h.f.Close(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return nil
}
