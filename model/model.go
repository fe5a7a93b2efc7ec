package model

import (
	"context"
	"fmt"
	"strings"
)

// Request captures the normalized model input produced by the planner and
// summarizer: system instructions, a single user prompt and a streaming flag.
type Request struct {
	Instructions string `json:"instructions"` // System instructions for the model
	Prompt       string `json:"prompt"`       // User prompt (goal, or goal + tool context)
	Stream       bool   `json:"stream,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a (partial or final) chunk emitted by a model. When streaming
// is requested the channel yields a lazy, finite sequence of partial text
// fragments followed by one final response.
type Response struct {
	Text         string      `json:"text"`
	Partial      bool        `json:"partial"`
	FinishReason string      `json:"finish_reason"` // "stop", "length", etc.
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required to drive generation.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// Collect drains the channel pair returned by Generate and returns the
// complete final text. Partial fragments are accumulated so Collect works
// identically for streaming and non-streaming requests. It returns the first
// error observed, or ctx.Err() on cancellation.
func Collect(ctx context.Context, respCh <-chan Response, errCh <-chan error) (string, error) {
	var partial strings.Builder

	for respCh != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case resp, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}
			if resp.Partial {
				partial.WriteString(resp.Text)
				continue
			}
			// Final responses carry the full text; prefer it over the
			// accumulated fragments when present.
			if resp.Text != "" {
				return resp.Text, nil
			}
			return partial.String(), nil

		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				return "", err
			}
		}
	}

	if partial.Len() > 0 {
		return partial.String(), nil
	}

	return "", fmt.Errorf("model produced no response")
}
