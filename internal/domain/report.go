package domain

import "time"

// Report holds everything measured by one completed run.
type Report struct {
	Volume    string    `json:"volume"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	StartedAt time.Time `json:"started_at"`

	// Size is the byte length of the input, which is also the number of
	// bytes read and written.
	Size uint64 `json:"size"`

	Algorithm string `json:"algorithm"`
	Digest    Digest `json:"digest"`

	Read  TimingSample `json:"read"`
	Write TimingSample `json:"write"`

	// Verified is true when the output was read back and its digest matched.
	Verified bool `json:"verified"`
}

// Megabytes returns the size in whole mebibytes, rounded down.
func (r Report) Megabytes() uint64 {
	return r.Size / 1024 / 1024
}

// ReadRate returns read throughput in bytes per second.
func (r Report) ReadRate() float64 { return r.Read.Rate(r.Size) }

// WriteRate returns write throughput in bytes per second.
func (r Report) WriteRate() float64 { return r.Write.Rate(r.Size) }
