// Package core defines the shared data model for one orchestration cycle:
// the Plan produced by the planner, the ExecutionReport produced by the
// executor and the small helpers both sides agree on.
//
// Everything in this package is a value type. A Plan is created once and
// never mutated; an ExecutionReport is assembled by the executor and is
// read-only afterwards. No entity in this package outlives a single cycle —
// persistence belongs to collaborators (memory, store).
package core
