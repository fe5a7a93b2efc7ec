package summarizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/model"
)

func reportOf(results ...core.ToolResult) core.ExecutionReport {
	return core.ExecutionReport{Results: results}
}

func TestSummarize_WithToolContext(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue("AI is moving fast.")

	s := New(llm)
	report := reportOf(core.ToolResult{
		Step:   core.PlanStep{Tool: "GoogleSearch", Input: "latest AI news"},
		Output: "- Big model released\n  https://example.com",
	})

	summary, err := s.Summarize(context.Background(), "Summarize the latest AI news", report)
	require.NoError(t, err)
	assert.Equal(t, "AI is moving fast.", summary)

	calls := llm.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Goal: Summarize the latest AI news")
	assert.Contains(t, calls[0].Prompt, "### GoogleSearch (input: latest AI news)")
	assert.Contains(t, calls[0].Prompt, "Big model released")
}

func TestSummarize_EmptyReportUsesGoalAlone(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue("Here is a poem about frogs.")

	s := New(llm)
	summary, err := s.Summarize(context.Background(), "Write me a poem about frogs.", core.ExecutionReport{})
	require.NoError(t, err)
	assert.NotEmpty(t, summary)

	calls := llm.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Goal: Write me a poem about frogs.", calls[0].Prompt)
	assert.NotContains(t, calls[0].Prompt, "Tool results")
}

func TestSummarize_FailedStepAnnotated(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue("Partial answer.")

	s := New(llm)
	report := reportOf(
		core.ToolResult{
			Step: core.PlanStep{Tool: "RedditSearch", Input: "go"},
			Err:  errors.New("rate limited"),
		},
		core.ToolResult{
			Step:   core.PlanStep{Tool: "HackerNews", Input: "go"},
			Output: "- Go 2 announced",
		},
	)

	_, err := s.Summarize(context.Background(), "goal", report)
	require.NoError(t, err)

	prompt := llm.Calls()[0].Prompt
	assert.Contains(t, prompt, "unavailable: rate limited")
	assert.Contains(t, prompt, "Go 2 announced")
}

func TestSummarize_ModelError(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Fail(errors.New("unreachable"))

	s := New(llm)
	_, err := s.Summarize(context.Background(), "goal", core.ExecutionReport{})

	var sumErr *SummarizationError
	require.ErrorAs(t, err, &sumErr)
}

func TestSummarize_EmptyResponse(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue("   ")

	s := New(llm)
	_, err := s.Summarize(context.Background(), "goal", core.ExecutionReport{})

	var sumErr *SummarizationError
	require.ErrorAs(t, err, &sumErr)
}

func TestSummarize_LimiterExhausted(t *testing.T) {
	llm := model.NewMockModel("test", "mock")

	limiter := core.NewCallLimiter(1)
	require.NoError(t, limiter.Increment())

	s := New(llm, func(o *Options) { o.Limiter = limiter })
	_, err := s.Summarize(context.Background(), "goal", core.ExecutionReport{})

	var sumErr *SummarizationError
	require.ErrorAs(t, err, &sumErr)
	assert.Empty(t, llm.Calls())
}

func TestContextBlock_Deterministic(t *testing.T) {
	report := reportOf(
		core.ToolResult{Step: core.PlanStep{Tool: "A", Input: "x"}, Output: "1"},
		core.ToolResult{Step: core.PlanStep{Tool: "B", Input: "y"}, Err: errors.New("down")},
	)
	assert.Equal(t, ContextBlock(report), ContextBlock(report))

	want := "### A (input: x)\n1\n\n### B (input: y)\nunavailable: down"
	assert.Equal(t, want, ContextBlock(report))
}

func TestSummarizeStream(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.Enqueue("streamed summary")

	s := New(llm, func(o *Options) { o.Stream = true })
	respCh, errCh, err := s.SummarizeStream(context.Background(), "goal", core.ExecutionReport{})
	require.NoError(t, err)

	text, err := model.Collect(context.Background(), respCh, errCh)
	require.NoError(t, err)
	assert.Equal(t, "streamed summary", text)
}
