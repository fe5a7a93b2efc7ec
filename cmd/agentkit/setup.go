package main

import (
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hupe1980/agentkit"
	"github.com/hupe1980/agentkit/config"
	"github.com/hupe1980/agentkit/logging"
	"github.com/hupe1980/agentkit/model"
	aimodel "github.com/hupe1980/agentkit/model/anthropic"
	oaimodel "github.com/hupe1980/agentkit/model/openai"
	"github.com/hupe1980/agentkit/store"
	"github.com/hupe1980/agentkit/tools/codesearch"
	"github.com/hupe1980/agentkit/tools/github"
	"github.com/hupe1980/agentkit/tools/hackernews"
	"github.com/hupe1980/agentkit/tools/reddit"
	"github.com/hupe1980/agentkit/tools/websearch"
	"github.com/hupe1980/agentkit/tools/wikipedia"
)

// buildKit assembles the full runtime from configuration: logger, model,
// tool registry and orchestrator. The returned cleanup closes the repo index
// database when one was opened.
func buildKit(cfg *config.Config) (*agentkit.Kit, func(), error) {
	logger := logging.NewSlogLogger(logging.ParseLevel(cfg.General.LogLevel), cfg.General.LogFormat, false)

	llm, err := buildModel(cfg)
	if err != nil {
		return nil, nil, err
	}

	kit := agentkit.New(llm, func(o *agentkit.Options) {
		o.MaxConcurrency = cfg.Executor.MaxConcurrency
		o.StepTimeout = cfg.Executor.StepTimeout
		o.PlannerRetries = cfg.Planner.Retries
		o.MaxModelCalls = cfg.Model.MaxCalls
		o.StreamSummary = cfg.Model.StreamSummary
		o.Logger = logger
	})

	cleanup := func() {}

	kit.RegisterTool(websearch.New(cfg.Tools.Serper.APIKey))
	kit.RegisterTool(hackernews.New())
	kit.RegisterTool(wikipedia.New())
	kit.RegisterTool(reddit.New())

	var idx *store.Index
	if cfg.Store.Path != "" {
		idx, err = store.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open repo index: %w", err)
		}
		cleanup = func() { _ = idx.Close() }
	}
	kit.RegisterTool(github.New(func(o *github.Options) {
		o.Token = cfg.Tools.GitHub.Token
		o.Index = idx
	}))

	kit.RegisterTool(codesearch.New(cfg.Tools.Supabase.URL, cfg.Tools.Supabase.Key, codesearch.NewOpenAIEmbedder()))

	return kit, cleanup, nil
}

func buildModel(cfg *config.Config) (model.Model, error) {
	switch cfg.Model.Provider {
	case "openai", "":
		var clientOpts []option.RequestOption
		if cfg.Model.APIKey != "" {
			clientOpts = append(clientOpts, option.WithAPIKey(cfg.Model.APIKey))
		}
		client := openaisdk.NewClient(clientOpts...)

		return oaimodel.NewModelFromClient(&client, func(o *oaimodel.Options) {
			if cfg.Model.Name != "" {
				o.Model = cfg.Model.Name
			}
			o.Temperature = cfg.Model.Temperature
			if cfg.Model.MaxTokens > 0 {
				o.MaxCompletionTokens = cfg.Model.MaxTokens
			}
		}), nil
	case "anthropic":
		return aimodel.NewModel(func(o *aimodel.Options) {
			if cfg.Model.Name != "" {
				o.Model = anthropicsdk.Model(cfg.Model.Name)
			}
			o.Temperature = cfg.Model.Temperature
			if cfg.Model.MaxTokens > 0 {
				o.MaxTokens = cfg.Model.MaxTokens
			}
			o.APIKey = cfg.Model.APIKey
		}), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q (want openai or anthropic)", cfg.Model.Provider)
	}
}
