// Package memory contains conversation memory implementations. The
// orchestrator records one Exchange (goal and summary) per successful cycle;
// nothing inside the cycle itself is persisted here.
//
// The in-memory store suits tests and single-process use; implement Store
// against a database for durable history.
package memory
