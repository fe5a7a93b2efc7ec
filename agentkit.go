// Package agentkit provides a high-level façade over the plan-execute-summarize
// orchestration loop. Most applications interact with this package by:
//  1. Creating a Kit via New() with a model implementation
//  2. Registering one or more tools (search clients, fetchers, vector queries)
//  3. Calling Run() with a goal to get back the plan, the execution report and
//     the final summary
//
// The façade composes the planner, executor and summarizer packages while
// keeping setup ergonomics concise. All defaults are safe for local
// development and testing; production deployments typically supply a durable
// memory store and a structured logger.
package agentkit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hupe1980/agentkit/artifact"
	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/executor"
	"github.com/hupe1980/agentkit/internal/util"
	"github.com/hupe1980/agentkit/logging"
	"github.com/hupe1980/agentkit/memory"
	"github.com/hupe1980/agentkit/model"
	"github.com/hupe1980/agentkit/planner"
	"github.com/hupe1980/agentkit/summarizer"
	"github.com/hupe1980/agentkit/tool"
)

// Options configures the Kit instance.
type Options struct {
	// MaxConcurrency bounds parallel tool execution within a cycle.
	MaxConcurrency int
	// StepTimeout is the independent deadline for each tool invocation.
	StepTimeout time.Duration
	// PlannerRetries is the number of extra planning attempts after a failure.
	PlannerRetries int
	// MaxModelCalls caps model calls per cycle (planning + summarization).
	// 0 means unlimited.
	MaxModelCalls int
	// StreamSummary requests token streaming from the model during
	// summarization. Run still returns the complete summary.
	StreamSummary bool
	// Memory records goal/summary exchanges after successful cycles (nil
	// disables recording).
	Memory memory.Store
	// Artifacts persists the full transcript of each successful cycle as
	// JSON, keyed by session and run id (nil disables recording).
	Artifacts artifact.Store
	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Kit is the orchestrator: it owns the tool registry and composes
// planner → executor → summarizer into one request/response cycle.
type Kit struct {
	llm      model.Model
	registry *tool.Registry
	opts     Options
}

// New creates a Kit backed by the given model with optional overrides.
func New(llm model.Model, optFns ...func(o *Options)) *Kit {
	opts := Options{
		MaxConcurrency: 4,
		StepTimeout:    30 * time.Second,
		MaxModelCalls:  10,
		Logger:         logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Kit{
		llm:      llm,
		registry: tool.NewRegistry(),
		opts:     opts,
	}
}

// RegisterTool adds a tool to the registry. Not safe to call while a cycle
// is running; the registry is read-only during execution.
func (k *Kit) RegisterTool(t tool.Tool) { k.registry.Register(t) }

// Registry exposes the underlying tool registry.
func (k *Kit) Registry() *tool.Registry { return k.registry }

// RunOptions configure a single orchestration cycle.
type RunOptions struct {
	// EnabledTools restricts the cycle to a subset of registered tools.
	// Empty means all registered tools. Names that are not registered are
	// dropped from the set so planner and executor agree on what exists.
	EnabledTools []string
	// SessionID keys the memory history for this cycle.
	SessionID string
}

// Result is the terminal artifact of one cycle.
type Result struct {
	ID      string               `json:"id"`
	Goal    string               `json:"goal"`
	Plan    core.Plan            `json:"plan"`
	Report  core.ExecutionReport `json:"report"`
	Summary string               `json:"summary"`
}

// Run executes one full cycle: plan, execute, summarize.
//
// Failure semantics follow the component contracts: a *planner.PlanningError
// aborts before any tool runs; individual tool failures are absorbed into the
// report and annotated for the summarizer; a *summarizer.SummarizationError
// aborts the cycle with no partial summary. The caller always gets either a
// Result with a Summary or an error naming the failing stage.
func (k *Kit) Run(ctx context.Context, goal string, optFns ...func(o *RunOptions)) (*Result, error) {
	runOpts := RunOptions{SessionID: "default"}
	for _, fn := range optFns {
		fn(&runOpts)
	}

	enabled := k.enabledTools(runOpts.EnabledTools)
	limiter := core.NewCallLimiter(k.opts.MaxModelCalls)

	k.opts.Logger.Info("kit.run.start", "goal", goal, "tools", len(enabled), "session_id", runOpts.SessionID)

	plnr := planner.New(k.llm, func(o *planner.Options) {
		o.Retries = k.opts.PlannerRetries
		o.Limiter = limiter
		o.Logger = k.opts.Logger
	})
	plan, err := plnr.Plan(ctx, goal, enabled)
	if err != nil {
		k.opts.Logger.Error("kit.run.planning_failed", "error", err.Error())
		return nil, err
	}

	exec := executor.New(func(o *executor.Options) {
		o.MaxConcurrency = k.opts.MaxConcurrency
		o.StepTimeout = k.opts.StepTimeout
		o.Logger = k.opts.Logger
	})
	report, err := exec.Execute(ctx, plan, k.registry)
	if err != nil {
		k.opts.Logger.Error("kit.run.execution_failed", "error", err.Error())
		return nil, err
	}

	summ := summarizer.New(k.llm, func(o *summarizer.Options) {
		o.Stream = k.opts.StreamSummary
		o.Limiter = limiter
		o.Logger = k.opts.Logger
	})
	summary, err := summ.Summarize(ctx, goal, report)
	if err != nil {
		k.opts.Logger.Error("kit.run.summarization_failed", "error", err.Error())
		return nil, err
	}

	if k.opts.Memory != nil {
		if err := k.opts.Memory.Save(runOpts.SessionID, memory.Exchange{Goal: goal, Summary: summary}); err != nil {
			// History is best effort; the cycle already produced its summary.
			k.opts.Logger.Warn("kit.run.memory_save_failed", "error", err.Error())
		}
	}

	result := &Result{
		ID:      util.NewID(),
		Goal:    goal,
		Plan:    plan,
		Report:  report,
		Summary: summary,
	}

	if k.opts.Artifacts != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := k.opts.Artifacts.Save(runOpts.SessionID, result.ID, data); err != nil {
				k.opts.Logger.Warn("kit.run.transcript_save_failed", "error", err.Error())
			}
		}
	}

	k.opts.Logger.Info("kit.run.success", "run_id", result.ID, "steps", plan.Len(), "failures", len(report.Failures()), "model_calls", limiter.Count())

	return result, nil
}

// enabledTools intersects the requested subset with the registered names,
// preserving registration order. Unknown requested names are logged and
// dropped so planner and executor agree on what exists.
func (k *Kit) enabledTools(requested []string) []string {
	if len(requested) == 0 {
		return k.registry.Names()
	}

	enabled := k.registry.Subset(requested)

	known := make(map[string]struct{}, len(enabled))
	for _, name := range enabled {
		known[name] = struct{}{}
	}
	for _, name := range requested {
		if _, ok := known[name]; !ok {
			k.opts.Logger.Warn("kit.run.unknown_tool_requested", "tool", name)
		}
	}

	return enabled
}
