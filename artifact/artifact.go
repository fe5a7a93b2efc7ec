// Package artifact stores the transcripts produced by orchestration cycles.
//
// A transcript is the serialized record of one cycle (goal, plan, per-step
// outcomes, summary), keyed by session and run id. The Store interface lives
// here so storage backends (in-memory, object stores, databases) can be
// swapped without touching calling code.
package artifact

import "fmt"

// ErrNotFound is returned when no transcript exists for the given session and
// run id pair.
var ErrNotFound = fmt.Errorf("transcript not found")

// Store persists raw transcript bytes keyed by session and run id.
type Store interface {
	// Save stores (or overwrites) the transcript for the given run.
	Save(sessionID, runID string, data []byte) error
	// Get returns the stored transcript or ErrNotFound.
	Get(sessionID, runID string) ([]byte, error)
	// List returns the run ids recorded for the session.
	List(sessionID string) ([]string, error)
	// Delete removes the transcript if present or returns ErrNotFound.
	Delete(sessionID, runID string) error
}
