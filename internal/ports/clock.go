package ports

import "time"

// Clock is the tick source for phase timing. Implementations must be
// monotonic for the duration of a run.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, whose monotonic reading makes End.Sub(Start)
// immune to wall-clock adjustments.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }
