// Package executor consumes a validated plan, invokes each named tool via the
// registry and collects outcomes into an ExecutionReport.
//
// Steps are independent (no inter-step data flow), so the executor may run
// them concurrently up to a configurable limit. Whatever the scheduling, the
// report is index-aligned with the plan: result i belongs to step i. A single
// tool failure never aborts the batch — the error is recorded in its slot and
// the remaining steps still run.
package executor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/logging"
	"github.com/hupe1980/agentkit/tool"
)

// Options configure an Executor instance.
type Options struct {
	// MaxConcurrency bounds the number of tool calls in flight. 1 gives
	// strictly sequential execution.
	MaxConcurrency int
	// StepTimeout is the independent deadline for each tool invocation.
	// Exceeding it is recorded like any other tool failure.
	StepTimeout time.Duration
	// Logger receives structured execution events.
	Logger logging.Logger
}

// Executor runs plans against a tool registry.
type Executor struct {
	maxConcurrency int
	stepTimeout    time.Duration
	logger         logging.Logger
}

// New creates an Executor with sensible defaults (4 concurrent steps, 30s
// per-step timeout).
func New(optFns ...func(o *Options)) *Executor {
	opts := Options{
		MaxConcurrency: 4,
		StepTimeout:    30 * time.Second,
		Logger:         logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}

	return &Executor{
		maxConcurrency: opts.MaxConcurrency,
		stepTimeout:    opts.StepTimeout,
		logger:         opts.Logger,
	}
}

// Execute attempts every step of the plan and returns one ToolResult per
// step, in plan order.
//
// Every tool name is resolved before anything is dispatched: an unknown name
// aborts with *UnknownToolError. The planner validates against the same
// enabled set, so hitting this indicates the registry changed between
// planning and execution.
//
// On context cancellation the dispatch loop stops, already-dispatched calls
// finish (or time out) and undispatched steps record the cancellation error;
// Execute then returns the partial report together with ctx.Err().
func (e *Executor) Execute(ctx context.Context, plan core.Plan, reg *tool.Registry) (core.ExecutionReport, error) {
	n := plan.Len()
	results := make([]core.ToolResult, n)

	// Resolve everything up front so an unknown tool is rejected before any
	// side effects, not discovered halfway through the batch.
	tools := make([]tool.Tool, n)
	for i, step := range plan.Steps {
		t, err := reg.Resolve(step.Tool)
		if err != nil {
			return core.ExecutionReport{}, &UnknownToolError{Tool: step.Tool, Cause: err}
		}
		tools[i] = t
	}

	sem := make(chan struct{}, e.maxConcurrency)
	var wg sync.WaitGroup

dispatch:
	for i, step := range plan.Steps {
		select {
		case <-ctx.Done():
			// Stop dispatching; mark this and all remaining steps.
			for j := i; j < n; j++ {
				results[j] = core.ToolResult{Step: plan.Steps[j], Err: ctx.Err()}
			}
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, step core.PlanStep, t tool.Tool) {
			defer wg.Done()
			defer func() { <-sem }()

			results[i] = e.runStep(ctx, step, t)
		}(i, step, tools[i])
	}

	// Join barrier: every dispatched call has completed or timed out.
	wg.Wait()

	report := core.ExecutionReport{Results: results}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	return report, nil
}

// runStep invokes a single tool under its independent timeout and normalizes
// the outcome into a ToolResult.
func (e *Executor) runStep(ctx context.Context, step core.PlanStep, t tool.Tool) core.ToolResult {
	stepCtx := ctx
	cancel := context.CancelFunc(func() {})
	if e.stepTimeout > 0 {
		stepCtx, cancel = context.WithTimeout(ctx, e.stepTimeout)
	}
	defer cancel()

	e.logger.Debug("executor.step.start", "tool", step.Tool, "input", step.Input)

	start := time.Now()
	output, err := t.Run(stepCtx, step.Input)
	elapsed := time.Since(start)

	logging.LogToolCall(e.logger, step.Tool, elapsed, err)

	if err != nil {
		if errors.Is(stepCtx.Err(), context.DeadlineExceeded) {
			err = tool.NewToolError(step.Tool, "step timed out after "+e.stepTimeout.String(), tool.CodeTimeout)
		}
		return core.ToolResult{Step: step, Err: err, Elapsed: elapsed}
	}

	return core.ToolResult{Step: step, Output: output, Elapsed: elapsed}
}
