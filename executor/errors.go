package executor

import "fmt"

// UnknownToolError reports a plan step referencing a tool the registry does
// not hold. The planner validates against the same enabled set, so this is a
// defensive check: seeing it means planner and registry disagreed, usually
// because the registry changed between planning and execution. It aborts the
// cycle before any step is dispatched.
type UnknownToolError struct {
	Tool  string
	Cause error
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q in plan: %v", e.Tool, e.Cause)
}

// Unwrap exposes the underlying registry error for errors.Is.
func (e *UnknownToolError) Unwrap() error { return e.Cause }
