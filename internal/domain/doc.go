// Package domain contains the core value types for volbench.
//
// It has no dependencies on infrastructure concerns (file system, logging,
// configuration) and holds only the rules the benchmark enforces.
//
// # Values
//
//   - [Digest]: the 32-byte hash of the transfer buffer and its hex form
//   - [TimingSample]: start and end of one timed I/O phase
//   - [Report]: everything a completed run measured
//   - [Fault]: a fatal failure, tagged with the phase that raised it
//
// Every [Fault] is fatal to the run. Callers inspect it with errors.Is
// against the sentinel kinds in errors.go, or errors.As for the details.
package domain
