// Package log is the logging abstraction used by volbench components.
//
// Components take a Logger rather than a concrete library so they can be
// tested with the no-op logger and embedded behind any logging stack.
//
// # Usage
//
// Wrap a zerolog.Logger, as the volbench command does with its console
// logger:
//
//	logger := log.NewZerologAdapterWithLogger(zl)
//
// Discard everything in tests:
//
//	logger := log.NewNoopLogger()
package log
