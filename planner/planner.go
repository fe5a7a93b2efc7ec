// Package planner turns a free-text goal into a validated execution plan by
// asking the language model collaborator to choose among the enabled tools.
//
// The model's output is treated as an untrusted external payload: it is
// parsed and validated into a core.Plan before anything is dispatched. A
// malformed response or a step referencing a tool outside the enabled set
// rejects the whole plan — steps are never silently filtered.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/internal/util"
	"github.com/hupe1980/agentkit/logging"
	"github.com/hupe1980/agentkit/model"
)

// Instructions is the system prompt framing the planning call.
const Instructions = "You are a planning agent. Your job is to read a user goal and return a list of steps " +
	"that should be executed to fulfill it. Each step must reference a known tool and an input."

// Options configure a Planner instance.
type Options struct {
	// Retries is the number of additional planning attempts after a failed
	// one (model error or unvalidatable plan). Zero by default: a bad plan
	// surfaces immediately.
	Retries int
	// Limiter optionally caps model calls for the enclosing cycle.
	Limiter *core.CallLimiter
	// Logger receives structured planning events.
	Logger logging.Logger
}

// Planner produces ordered tool plans from goals.
type Planner struct {
	llm     model.Model
	retries int
	limiter *core.CallLimiter
	logger  logging.Logger
}

// New creates a Planner backed by the given model.
func New(llm model.Model, optFns ...func(o *Options)) *Planner {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Planner{
		llm:     llm,
		retries: opts.Retries,
		limiter: opts.Limiter,
		logger:  opts.Logger,
	}
}

// Plan asks the model to choose zero or more of the enabled tools and an
// input for each. An empty enabled set short circuits to an empty plan
// without a model call: no tool outside the set can ever appear.
func (p *Planner) Plan(ctx context.Context, goal string, enabledTools []string) (core.Plan, error) {
	if len(enabledTools) == 0 {
		p.logger.Debug("planner.plan.no_tools", "goal", goal)
		return core.Plan{}, nil
	}

	prompt := buildPrompt(goal, enabledTools)

	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		plan, err := p.planOnce(ctx, prompt, enabledTools)
		if err == nil {
			p.logger.Info("planner.plan.success", "steps", plan.Len(), "attempt", attempt+1)
			return plan, nil
		}
		if ctx.Err() != nil {
			return core.Plan{}, ctx.Err()
		}
		p.logger.Warn("planner.plan.failed", "attempt", attempt+1, "error", err.Error())
		lastErr = err
	}

	return core.Plan{}, lastErr
}

func (p *Planner) planOnce(ctx context.Context, prompt string, enabledTools []string) (core.Plan, error) {
	if p.limiter != nil {
		if err := p.limiter.Increment(); err != nil {
			return core.Plan{}, &PlanningError{Cause: err}
		}
	}

	start := time.Now()
	respCh, errCh := p.llm.Generate(ctx, model.Request{
		Instructions: Instructions,
		Prompt:       prompt,
	})
	raw, err := model.Collect(ctx, respCh, errCh)
	logging.LogModelCall(p.logger, p.llm.Info().Name, time.Since(start), err)
	if err != nil {
		return core.Plan{}, &PlanningError{Cause: fmt.Errorf("model call failed: %w", err)}
	}

	plan, err := Parse(raw, enabledTools)
	if err != nil {
		return core.Plan{}, err
	}

	return plan, nil
}

// Parse validates a raw model response into a Plan. The response may be a
// bare JSON list of {tool, input} objects or a {"steps": [...]} wrapper,
// optionally fenced in markdown. Any parse failure, any malformed step and
// any step whose tool is outside enabledTools rejects the whole plan.
func Parse(raw string, enabledTools []string) (core.Plan, error) {
	payload := util.ExtractJSON(raw)

	var steps []core.PlanStep
	if err := json.Unmarshal([]byte(payload), &steps); err != nil {
		var wrapped core.Plan
		if err2 := json.Unmarshal([]byte(payload), &wrapped); err2 != nil {
			return core.Plan{}, &PlanningError{Raw: raw, Cause: fmt.Errorf("response is not a JSON step list: %w", err)}
		}
		steps = wrapped.Steps
	}

	enabled := make(map[string]struct{}, len(enabledTools))
	for _, name := range enabledTools {
		enabled[name] = struct{}{}
	}

	for i, step := range steps {
		if step.Tool == "" {
			return core.Plan{}, &PlanningError{Raw: raw, Cause: fmt.Errorf("step %d has no tool name", i)}
		}
		if _, ok := enabled[step.Tool]; !ok {
			return core.Plan{}, &PlanningError{Raw: raw, Cause: fmt.Errorf("step %d references tool %q outside the enabled set", i, step.Tool)}
		}
	}

	return core.Plan{Steps: steps}, nil
}

// buildPrompt mirrors the planning prompt shape the models respond to best:
// an explicit field contract, the goal and a one-line example, with a strict
// "JSON only" closing instruction.
func buildPrompt(goal string, enabledTools []string) string {
	var b strings.Builder

	b.WriteString("You are a planning agent that receives a user goal and selects tools to execute it.\n")
	b.WriteString("Your task is to return a list of JSON steps, where each step has two fields:\n")
	fmt.Fprintf(&b, "  - tool: one of [%s]\n", strings.Join(enabledTools, ", "))
	b.WriteString("  - input: what to feed into the tool\n\n")
	fmt.Fprintf(&b, "Goal: %s\n\n", goal)
	b.WriteString("EXAMPLE OUTPUT:\n")
	b.WriteString(`[{"tool": "RedditSearch", "input": "open-source AI"}, {"tool": "HackerNews", "input": "open-source AI"}]` + "\n\n")
	b.WriteString("If no tool is relevant, return: []\n")
	b.WriteString("ONLY return a valid JSON list of steps, no commentary, no explanation.\n")

	return b.String()
}
