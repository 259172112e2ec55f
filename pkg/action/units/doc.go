// Package units provides reusable units for action chains.
//
// - Func: run a function, then continue
// - Guard: continue only while a predicate holds
// - Call: build and run a sub-chain from the entry's block
// - Logging: log the remaining chain with zap
// - Tracing: wrap the remaining chain in an OpenTelemetry span
package units
