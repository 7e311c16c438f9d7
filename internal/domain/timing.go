package domain

import "time"

// TimingSample is the start and end of one timed I/O phase.
type TimingSample struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Elapsed returns End - Start, clamped at zero so a misbehaving clock can
// never report negative time.
func (s TimingSample) Elapsed() time.Duration {
	d := s.End.Sub(s.Start)
	if d < 0 {
		return 0
	}
	return d
}

// Seconds returns the elapsed time in floating-point seconds.
func (s TimingSample) Seconds() float64 {
	return s.Elapsed().Seconds()
}

// Rate returns bytes per second for a phase that moved n bytes.
// A phase too fast to measure reports zero rather than +Inf.
func (s TimingSample) Rate(n uint64) float64 {
	secs := s.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(n) / secs
}
