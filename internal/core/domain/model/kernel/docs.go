// Package kernel provides core domain primitives for the order service.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - RunID: A value object identifying one scheduled orchestration run
//   - RunContext: Per-run correlation state (run id, job label, fetch window)
//
// These primitives are immutable and thread-safe. RunContext in particular is
// always passed explicitly into component calls, never held as ambient
// process-wide state, so every log line and outbound message of a run can be
// correlated without shared mutable state between runs.
package kernel
