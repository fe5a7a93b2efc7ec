// Package tool implements the capability subsystem: named external
// integrations (search APIs, fetchers, vector queries) exposed through a
// single-method interface, plus the registry that maps names to
// implementations with consistent error handling.
package tool

import "context"

// Tool defines the interface for extending the orchestrator with external
// capabilities.
//
// A tool is deliberately a capability set of one method: it receives the
// input text chosen by the planner and returns text output. Credentials and
// configuration are owned by the tool implementation, passed in at
// construction time, never read from ambient state inside Run.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Honor context cancellation in Run
//   - Return *ToolError for failures so callers get uniform codes
//   - Be safe for concurrent use; the executor may run steps in parallel
type Tool interface {
	// Name returns the unique identifier for this tool. Names are what the
	// planning model selects, so they should be short and descriptive
	// (e.g. "GoogleSearch", "HackerNews").
	Name() string

	// Description returns a human-readable description of what this tool does.
	// It is shown to the planning model to help it decide when to use the tool.
	Description() string

	// Run executes the tool with the planner-chosen input text.
	Run(ctx context.Context, input string) (string, error)
}
