package planner

import "fmt"

// PlanningError reports a planning cycle failure: the model call failed, its
// response could not be parsed, or the parsed plan referenced a tool outside
// the enabled set. It is fatal for the cycle — no tools run after it.
type PlanningError struct {
	// Raw is the unparsed model response, kept for diagnostics.
	Raw string
	// Cause is the underlying failure.
	Cause error
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("planning failed: %v", e.Cause)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *PlanningError) Unwrap() error { return e.Cause }
