package core

import "time"

// ToolResult records the outcome of one executed plan step. Exactly one
// ToolResult exists per step, in plan order. A failed step keeps its slot:
// Err is set and Output is empty, so downstream consumers can annotate the
// gap instead of silently losing it.
type ToolResult struct {
	Step    PlanStep      `json:"step"`
	Output  string        `json:"output"`
	Err     error         `json:"-"`
	Elapsed time.Duration `json:"elapsed"`
}

// Failed reports whether the step ended in an error (including timeout).
func (r ToolResult) Failed() bool { return r.Err != nil }

// ExecutionReport is the ordered record of outcomes for every planned tool
// invocation. The executor guarantees Results is index-aligned with the plan
// regardless of how steps were scheduled.
type ExecutionReport struct {
	Results []ToolResult `json:"results"`
}

// Len returns the number of results.
func (r ExecutionReport) Len() int { return len(r.Results) }

// Failures returns the results whose step failed, preserving order.
func (r ExecutionReport) Failures() []ToolResult {
	var failed []ToolResult
	for _, res := range r.Results {
		if res.Failed() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Successes returns the results whose step produced output, preserving order.
func (r ExecutionReport) Successes() []ToolResult {
	var ok []ToolResult
	for _, res := range r.Results {
		if !res.Failed() {
			ok = append(ok, res)
		}
	}
	return ok
}
