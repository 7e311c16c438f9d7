// Package ports defines the interfaces (ports) that connect the benchmark
// pipeline to infrastructure adapters.
//
// # Port Interfaces
//
//   - [Mounter]: Mounts a storage volume by ID
//   - [Volume]: Opens named files on a mounted volume
//   - [FileHandle]: Size, read, write, sync and close on one open file
//   - [Clock]: Monotonic time source for phase timing
//   - [ReportRepository]: Persists the report of a completed run
//
// # Usage
//
// The application layer (internal/app) and the transfer layer
// (internal/transfer) depend only on these interfaces. Adapters in
// internal/adapters implement them for the host file system and for an
// in-memory volume used in tests.
package ports
