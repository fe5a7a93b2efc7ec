package tool

import "context"

// FuncTool is a generic adapter that exposes a plain Go function as a Tool.
//
// Responsibilities:
//   - Carries the name and description shown to the planning model
//   - Normalizes error handling so callers receive *ToolError with consistent
//     codes (custom codes preserved if the function returns *ToolError directly)
//
// Concurrency:
//
//	A FuncTool has no internal mutable state after construction and is safe
//	for concurrent use by multiple goroutines.
type FuncTool struct {
	// Tool identifier selected by the planner
	name string
	// Human-readable description shown to the planning model
	description string
	// User supplied implementation
	fn RunFunc
}

// RunFunc is the signature wrapped by FuncTool.
type RunFunc = func(ctx context.Context, input string) (string, error)

// NewFuncTool constructs a FuncTool from a name, description and function.
//
// Example:
//
//	echo := NewFuncTool("Echo", "Repeat the input back", func(ctx context.Context, input string) (string, error) {
//	    return input, nil
//	})
func NewFuncTool(name, description string, fn RunFunc) *FuncTool {
	return &FuncTool{
		name:        name,
		description: description,
		fn:          fn,
	}
}

// Name returns the unique tool name used in plans and registry routing.
func (t *FuncTool) Name() string { return t.name }

// Description returns the short natural language description exposed to models.
func (t *FuncTool) Description() string { return t.description }

// Run invokes the wrapped function. Failures are wrapped (or passed through)
// as *ToolError for uniform downstream handling.
func (t *FuncTool) Run(ctx context.Context, input string) (string, error) {
	out, err := t.fn(ctx, input)
	if err != nil {
		return "", WrapError(t.name, err)
	}
	return out, nil
}
