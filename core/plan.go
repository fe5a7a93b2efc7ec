package core

import (
	"fmt"
	"strings"
)

// PlanStep is a single tool invocation chosen by the planner: which tool to
// run and the input text to feed it. The JSON shape matches what the planning
// model is asked to produce.
type PlanStep struct {
	Tool  string `json:"tool"`
	Input string `json:"input"`
}

// String renders the step for logs and CLI output.
func (s PlanStep) String() string {
	return fmt.Sprintf("%s(%q)", s.Tool, s.Input)
}

// Plan is the ordered sequence of tool invocations derived from a goal.
// An empty plan is valid and signals that no tool use is needed; the
// summarizer then works from the goal alone.
type Plan struct {
	Steps []PlanStep `json:"steps"`
}

// IsEmpty reports whether the plan contains no steps.
func (p Plan) IsEmpty() bool { return len(p.Steps) == 0 }

// Len returns the number of steps.
func (p Plan) Len() int { return len(p.Steps) }

// ToolNames returns the distinct tool names referenced by the plan, in order
// of first appearance.
func (p Plan) ToolNames() []string {
	seen := make(map[string]struct{}, len(p.Steps))
	names := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		if _, ok := seen[s.Tool]; ok {
			continue
		}
		seen[s.Tool] = struct{}{}
		names = append(names, s.Tool)
	}
	return names
}

// String renders the plan one step per line.
func (p Plan) String() string {
	if p.IsEmpty() {
		return "(empty plan)"
	}
	var b strings.Builder
	for i, s := range p.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return b.String()
}
