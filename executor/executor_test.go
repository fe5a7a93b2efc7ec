package executor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/tool"
)

func planOf(steps ...core.PlanStep) core.Plan { return core.Plan{Steps: steps} }

func TestExecute_OrderMatchesPlan(t *testing.T) {
	// Earlier steps sleep longer, so completion order is the reverse of plan
	// order; the report must still follow the plan.
	reg := tool.NewRegistry()
	for i, d := range []time.Duration{30 * time.Millisecond, 20 * time.Millisecond, 10 * time.Millisecond} {
		name := fmt.Sprintf("T%d", i)
		delay := d
		reg.Register(tool.NewFuncTool(name, "", func(ctx context.Context, input string) (string, error) {
			time.Sleep(delay)
			return "out-" + input, nil
		}))
	}

	plan := planOf(
		core.PlanStep{Tool: "T0", Input: "a"},
		core.PlanStep{Tool: "T1", Input: "b"},
		core.PlanStep{Tool: "T2", Input: "c"},
	)

	exec := New(func(o *Options) { o.MaxConcurrency = 3 })
	report, err := exec.Execute(context.Background(), plan, reg)
	require.NoError(t, err)
	require.Equal(t, 3, report.Len())
	assert.Equal(t, "out-a", report.Results[0].Output)
	assert.Equal(t, "out-b", report.Results[1].Output)
	assert.Equal(t, "out-c", report.Results[2].Output)
}

func TestExecute_OrderStableAcrossRuns(t *testing.T) {
	reg := tool.NewRegistry(
		tool.NewFuncTool("Echo", "", func(ctx context.Context, input string) (string, error) {
			return input, nil
		}),
	)
	plan := planOf(
		core.PlanStep{Tool: "Echo", Input: "1"},
		core.PlanStep{Tool: "Echo", Input: "2"},
		core.PlanStep{Tool: "Echo", Input: "3"},
	)

	exec := New(func(o *Options) { o.MaxConcurrency = 2 })
	first, err := exec.Execute(context.Background(), plan, reg)
	require.NoError(t, err)
	second, err := exec.Execute(context.Background(), plan, reg)
	require.NoError(t, err)
	assert.Equal(t, first.Results[0].Output, second.Results[0].Output)
	assert.Equal(t, first.Results[1].Output, second.Results[1].Output)
	assert.Equal(t, first.Results[2].Output, second.Results[2].Output)
}

func TestExecute_ErrorIsolation(t *testing.T) {
	reg := tool.NewRegistry(
		tool.NewFuncTool("Good", "", func(ctx context.Context, input string) (string, error) {
			return "ok", nil
		}),
		tool.NewFuncTool("Bad", "", func(ctx context.Context, input string) (string, error) {
			return "", errors.New("boom")
		}),
	)
	plan := planOf(
		core.PlanStep{Tool: "Good", Input: "x"},
		core.PlanStep{Tool: "Bad", Input: "y"},
		core.PlanStep{Tool: "Good", Input: "z"},
	)

	exec := New()
	report, err := exec.Execute(context.Background(), plan, reg)
	require.NoError(t, err)
	require.Equal(t, 3, report.Len())

	assert.False(t, report.Results[0].Failed())
	assert.True(t, report.Results[1].Failed())
	assert.False(t, report.Results[2].Failed())
	assert.Equal(t, "ok", report.Results[2].Output)
	assert.Len(t, report.Failures(), 1)
	assert.Len(t, report.Successes(), 2)
}

func TestExecute_UnknownToolAbortsBeforeDispatch(t *testing.T) {
	var ran atomic.Bool
	reg := tool.NewRegistry(
		tool.NewFuncTool("Known", "", func(ctx context.Context, input string) (string, error) {
			ran.Store(true)
			return "", nil
		}),
	)
	plan := planOf(
		core.PlanStep{Tool: "Known", Input: "x"},
		core.PlanStep{Tool: "Ghost", Input: "y"},
	)

	exec := New()
	_, err := exec.Execute(context.Background(), plan, reg)

	var unknownErr *UnknownToolError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "Ghost", unknownErr.Tool)
	assert.ErrorIs(t, err, tool.ErrToolNotFound)
	assert.False(t, ran.Load(), "no step may run when the plan fails validation")
}

func TestExecute_EmptyPlan(t *testing.T) {
	exec := New()
	report, err := exec.Execute(context.Background(), core.Plan{}, tool.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Len())
}

func TestExecute_StepTimeoutRecorded(t *testing.T) {
	reg := tool.NewRegistry(
		tool.NewFuncTool("Slow", "", func(ctx context.Context, input string) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Second):
				return "done", nil
			}
		}),
		tool.NewFuncTool("Fast", "", func(ctx context.Context, input string) (string, error) {
			return "quick", nil
		}),
	)
	plan := planOf(
		core.PlanStep{Tool: "Slow", Input: "x"},
		core.PlanStep{Tool: "Fast", Input: "y"},
	)

	exec := New(func(o *Options) { o.StepTimeout = 20 * time.Millisecond })
	report, err := exec.Execute(context.Background(), plan, reg)
	require.NoError(t, err, "a timeout is a step failure, not a batch failure")
	require.Equal(t, 2, report.Len())

	var toolErr *tool.ToolError
	require.ErrorAs(t, report.Results[0].Err, &toolErr)
	assert.Equal(t, tool.CodeTimeout, toolErr.Code)
	assert.Equal(t, "quick", report.Results[1].Output)
}

func TestExecute_CancellationStopsDispatch(t *testing.T) {
	started := make(chan struct{})
	reg := tool.NewRegistry(
		tool.NewFuncTool("Block", "", func(ctx context.Context, input string) (string, error) {
			close(started)
			<-ctx.Done()
			return "", ctx.Err()
		}),
		tool.NewFuncTool("Never", "", func(ctx context.Context, input string) (string, error) {
			return "should not run", nil
		}),
	)
	plan := planOf(
		core.PlanStep{Tool: "Block", Input: "x"},
		core.PlanStep{Tool: "Never", Input: "y"},
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	// Concurrency 1 so the second step is still queued when cancel fires.
	exec := New(func(o *Options) { o.MaxConcurrency = 1; o.StepTimeout = time.Second })
	report, err := exec.Execute(ctx, plan, reg)
	assert.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 2, report.Len())
	assert.True(t, report.Results[1].Failed())
	assert.ErrorIs(t, report.Results[1].Err, context.Canceled)
}
