package ports

import "github.com/bft-labs/volbench/internal/domain"

// Mounter makes a storage volume available for file operations.
type Mounter interface {
	// Mount prepares the volume identified by volumeID.
	// Returns an error wrapping domain.ErrMount if the volume is absent,
	// unformatted, or already mounted.
	Mount(volumeID string) (Volume, error)
}

// Volume is a mounted storage device exposing named files.
// At most one FileHandle may be open on a Volume at any time.
type Volume interface {
	// ID returns the identifier the volume was mounted with.
	ID() string

	// Open opens the volume-relative path in the given mode.
	// Returns an error wrapping domain.ErrNotFound when a ReadExisting path
	// does not exist, and domain.ErrIO for any other failure.
	Open(path string, mode domain.OpenMode) (FileHandle, error)
}

// FileHandle is an open reference to one file on a Volume.
// It is owned by whoever opened it and must be closed on every path.
type FileHandle interface {
	// Size returns the byte length of a file opened with ReadExisting.
	Size() (uint64, error)

	// Read fills buf from the current position. It returns fewer than
	// len(buf) bytes only when end of file is reached first.
	Read(buf []byte) (int, error)

	// Write writes all of buf or returns an error.
	Write(buf []byte) (int, error)

	// Sync flushes written data to the device.
	Sync() error

	// Close releases the handle. Closing twice is an error.
	Close() error
}
