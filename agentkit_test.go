package agentkit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentkit/artifact"
	"github.com/hupe1980/agentkit/memory"
	"github.com/hupe1980/agentkit/model"
	"github.com/hupe1980/agentkit/planner"
	"github.com/hupe1980/agentkit/summarizer"
	"github.com/hupe1980/agentkit/tool"
)

func searchTool(name, output string) tool.Tool {
	return tool.NewFuncTool(name, "test search tool", func(_ context.Context, input string) (string, error) {
		return output, nil
	})
}

func TestRun_FullCycle(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue(
		`[{"tool": "GoogleSearch", "input": "latest AI news"}]`,
		"Recent AI headlines: a new model was announced.",
	)

	kit := New(llm)
	kit.RegisterTool(searchTool("GoogleSearch", "- New model announced\n  https://example.com/google"))

	res, err := kit.Run(context.Background(), "Summarize the latest AI news")
	require.NoError(t, err)
	require.Equal(t, 1, res.Plan.Len())
	assert.Equal(t, "GoogleSearch", res.Plan.Steps[0].Tool)
	require.Equal(t, 1, res.Report.Len())
	assert.Equal(t, "- New model announced\n  https://example.com/google", res.Report.Results[0].Output)
	assert.Equal(t, "Recent AI headlines: a new model was announced.", res.Summary)

	// The summarization prompt must carry the attributed search output.
	calls := llm.Calls()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[1].Prompt, "New model announced")
}

func TestRun_NoRegisteredTools(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue("Answer from the goal alone.")

	kit := New(llm)
	res, err := kit.Run(context.Background(), "X")
	require.NoError(t, err)
	assert.True(t, res.Plan.IsEmpty())
	assert.Equal(t, 0, res.Report.Len())
	assert.Equal(t, "Answer from the goal alone.", res.Summary)
	// Only the summarization call happened.
	assert.Len(t, llm.Calls(), 1)
}

func TestRun_PlanningErrorFailsFast(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue("this is not json")

	invoked := false
	kit := New(llm)
	kit.RegisterTool(tool.NewFuncTool("T", "", func(_ context.Context, _ string) (string, error) {
		invoked = true
		return "", nil
	}))

	_, err := kit.Run(context.Background(), "goal")
	var planErr *planner.PlanningError
	require.ErrorAs(t, err, &planErr)
	assert.False(t, invoked, "no tool may run after a planning failure")
	assert.Len(t, llm.Calls(), 1, "no summarization call after a planning failure")
}

func TestRun_ToolFailureStillProducesSummary(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue(
		`[{"tool": "Broken", "input": "q"}]`,
		"Could not reach the search backend, answering from general knowledge.",
	)

	kit := New(llm)
	kit.RegisterTool(tool.NewFuncTool("Broken", "", func(_ context.Context, _ string) (string, error) {
		return "", tool.NewToolError("Broken", "api key not configured", tool.CodeMissingCredential)
	}))

	res, err := kit.Run(context.Background(), "goal")
	require.NoError(t, err)
	require.Equal(t, 1, res.Report.Len())
	assert.True(t, res.Report.Results[0].Failed())
	assert.NotEmpty(t, res.Summary)

	// The failure is annotated in the summarization context.
	assert.Contains(t, llm.Calls()[1].Prompt, "unavailable")
}

func TestRun_SummarizationError(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue(`[]`, "")

	kit := New(llm)
	kit.RegisterTool(searchTool("T", "x"))

	_, err := kit.Run(context.Background(), "goal")
	var sumErr *summarizer.SummarizationError
	require.ErrorAs(t, err, &sumErr)
}

func TestRun_EnabledSubset(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue(`[{"tool": "A", "input": "q"}]`, "done")

	kit := New(llm)
	kit.RegisterTool(searchTool("A", "from A"))
	kit.RegisterTool(searchTool("B", "from B"))

	res, err := kit.Run(context.Background(), "goal", func(o *RunOptions) {
		o.EnabledTools = []string{"A", "DoesNotExist"}
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Plan.Len())

	// Planner saw only tool A.
	assert.Contains(t, llm.Calls()[0].Prompt, "[A]")
	assert.NotContains(t, llm.Calls()[0].Prompt, "B,")
}

func TestRun_PlanReferencingDisabledToolRejected(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue(`[{"tool": "B", "input": "q"}]`)

	kit := New(llm)
	kit.RegisterTool(searchTool("A", "from A"))
	kit.RegisterTool(searchTool("B", "from B"))

	_, err := kit.Run(context.Background(), "goal", func(o *RunOptions) {
		o.EnabledTools = []string{"A"}
	})
	var planErr *planner.PlanningError
	require.ErrorAs(t, err, &planErr)
}

func TestRun_MemoryRecordsExchange(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue("final summary")

	store := memory.NewInMemoryStore()
	kit := New(llm, func(o *Options) { o.Memory = store })

	_, err := kit.Run(context.Background(), "remember me", func(o *RunOptions) {
		o.SessionID = "s1"
	})
	require.NoError(t, err)

	history, err := store.History("s1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "remember me", history[0].Goal)
	assert.Equal(t, "final summary", history[0].Summary)
}

func TestRun_TranscriptSaved(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue(
		`[{"tool": "GoogleSearch", "input": "q"}]`,
		"summary text",
	)

	transcripts := artifact.NewInMemoryStore()
	kit := New(llm, func(o *Options) { o.Artifacts = transcripts })
	kit.RegisterTool(searchTool("GoogleSearch", "hit"))

	res, err := kit.Run(context.Background(), "record this", func(o *RunOptions) {
		o.SessionID = "s1"
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.ID)

	data, err := transcripts.Get("s1", res.ID)
	require.NoError(t, err)

	var saved Result
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, "record this", saved.Goal)
	assert.Equal(t, "summary text", saved.Summary)
	require.Equal(t, 1, saved.Report.Len())
	assert.Equal(t, "hit", saved.Report.Results[0].Output)
}

func TestRun_Cancellation(t *testing.T) {
	llm := model.NewMockModel("test", "mock")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	kit := New(llm)
	kit.RegisterTool(searchTool("T", "x"))

	_, err := kit.Run(ctx, "goal")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || errors.As(err, new(*planner.PlanningError)))
}
