package domain

// OpenMode selects how a file on a volume is opened.
type OpenMode int

const (
	// ReadExisting opens an existing file for reading.
	ReadExisting OpenMode = iota

	// CreateOrTruncate creates the file, or truncates it if it exists,
	// and opens it for writing.
	CreateOrTruncate
)

func (m OpenMode) String() string {
	switch m {
	case ReadExisting:
		return "read"
	case CreateOrTruncate:
		return "write"
	default:
		return "unknown"
	}
}
