// Package summarizer synthesizes the final answer for a cycle: it folds the
// execution report into an attributed context block and asks the language
// model collaborator to answer the goal from it.
//
// Failed steps are annotated as unavailable rather than omitted, so the model
// (and anyone reading the prompt) can see which sources were missing. The
// rendering is deterministic: same report, same context block.
package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/logging"
	"github.com/hupe1980/agentkit/model"
)

// Instructions is the system prompt framing the summarization call.
const Instructions = "You are a helpful assistant. Answer the user's goal using the tool results provided. " +
	"If a tool result is marked unavailable, work with what remains and say so when it matters."

// Options configure a Summarizer instance.
type Options struct {
	// Stream requests incremental token fragments from the model. Summarize
	// still returns the complete text; use SummarizeStream for the fragments.
	Stream bool
	// Limiter optionally caps model calls for the enclosing cycle.
	Limiter *core.CallLimiter
	// Logger receives structured summarization events.
	Logger logging.Logger
}

// Summarizer produces the terminal Summary of an orchestration cycle.
type Summarizer struct {
	llm     model.Model
	stream  bool
	limiter *core.CallLimiter
	logger  logging.Logger
}

// New creates a Summarizer backed by the given model.
func New(llm model.Model, optFns ...func(o *Options)) *Summarizer {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Summarizer{
		llm:     llm,
		stream:  opts.Stream,
		limiter: opts.Limiter,
		logger:  opts.Logger,
	}
}

// Summarize sends the goal plus the rendered report to the model and returns
// its response verbatim. An empty report is fine: the model answers from the
// goal alone. An unreachable model or an empty response fails with
// *SummarizationError.
func (s *Summarizer) Summarize(ctx context.Context, goal string, report core.ExecutionReport) (string, error) {
	respCh, errCh, err := s.SummarizeStream(ctx, goal, report)
	if err != nil {
		return "", err
	}

	text, err := model.Collect(ctx, respCh, errCh)
	if err != nil {
		return "", &SummarizationError{Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &SummarizationError{Cause: fmt.Errorf("model returned an empty summary")}
	}

	return text, nil
}

// SummarizeStream starts the summarization call and hands back the raw model
// channels so callers can render fragments as they arrive. The terminal
// (non-partial) response carries the complete text.
func (s *Summarizer) SummarizeStream(ctx context.Context, goal string, report core.ExecutionReport) (<-chan model.Response, <-chan error, error) {
	if s.limiter != nil {
		if err := s.limiter.Increment(); err != nil {
			return nil, nil, &SummarizationError{Cause: err}
		}
	}

	prompt := buildPrompt(goal, report)
	s.logger.Debug("summarizer.summarize.start", "results", report.Len(), "stream", s.stream)

	start := time.Now()
	respCh, errCh := s.llm.Generate(ctx, model.Request{
		Instructions: Instructions,
		Prompt:       prompt,
		Stream:       s.stream,
	})
	// The call is asynchronous; log dispatch latency only.
	s.logger.Debug("summarizer.summarize.dispatched", "elapsed", time.Since(start))

	return respCh, errCh, nil
}

// buildPrompt renders the goal and the attributed tool context. Exported
// indirectly through tests via ContextBlock.
func buildPrompt(goal string, report core.ExecutionReport) string {
	block := ContextBlock(report)
	if block == "" {
		return fmt.Sprintf("Goal: %s", goal)
	}
	return fmt.Sprintf("Goal: %s\n\nTool results:\n\n%s", goal, block)
}

// ContextBlock renders the report into the context text sent to the model:
// one attributed section per step, in plan order. Failed steps become a
// single "unavailable" line carrying the error message.
func ContextBlock(report core.ExecutionReport) string {
	if report.Len() == 0 {
		return ""
	}

	sections := make([]string, 0, report.Len())
	for _, res := range report.Results {
		header := fmt.Sprintf("### %s (input: %s)", res.Step.Tool, res.Step.Input)
		if res.Failed() {
			sections = append(sections, fmt.Sprintf("%s\nunavailable: %v", header, res.Err))
			continue
		}
		sections = append(sections, fmt.Sprintf("%s\n%s", header, res.Output))
	}

	return strings.Join(sections, "\n\n")
}
