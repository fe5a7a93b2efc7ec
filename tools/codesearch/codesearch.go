// Package codesearch implements semantic search over indexed code chunks. The
// query is embedded and matched against a pgvector index exposed through a
// Supabase RPC endpoint.
package codesearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/tool"
)

const defaultName = "CodeQuery"

// Embedder converts text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Options configure the code search tool.
type Options struct {
	// Name overrides the registered tool name.
	Name string
	// MatchCount caps the number of returned chunks.
	MatchCount int
	// MatchThreshold filters out chunks below this similarity.
	MatchThreshold float64
	// MaxChunkChars truncates individual chunk contents.
	MaxChunkChars int
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// Tool embeds the query and calls the match_code_chunks RPC on a Supabase
// project, returning the best matching code chunks as fenced blocks.
type Tool struct {
	name           string
	supabaseURL    string
	supabaseKey    string
	embedder       Embedder
	matchCount     int
	matchThreshold float64
	maxChunkChars  int
	client         *http.Client
}

// New creates the code search tool. The Supabase project URL and service key
// are explicit configuration; missing values are reported as credential
// errors at run time.
func New(supabaseURL, supabaseKey string, embedder Embedder, optFns ...func(o *Options)) *Tool {
	opts := Options{
		Name:           defaultName,
		MatchCount:     5,
		MatchThreshold: 0.7,
		MaxChunkChars:  2000,
		HTTPClient:     &http.Client{Timeout: 30 * time.Second},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Tool{
		name:           opts.Name,
		supabaseURL:    strings.TrimRight(supabaseURL, "/"),
		supabaseKey:    supabaseKey,
		embedder:       embedder,
		matchCount:     opts.MatchCount,
		matchThreshold: opts.MatchThreshold,
		maxChunkChars:  opts.MaxChunkChars,
		client:         opts.HTTPClient,
	}
}

// Name implements tool.Tool.
func (t *Tool) Name() string { return t.name }

// Description implements tool.Tool.
func (t *Tool) Description() string {
	return "Search the indexed codebase semantically. Input: a natural-language question about the code."
}

type matchRequest struct {
	QueryEmbedding []float64 `json:"query_embedding"`
	MatchThreshold float64   `json:"match_threshold"`
	MatchCount     int       `json:"match_count"`
}

type matchRow struct {
	FilePath   string  `json:"file_path"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// Run implements tool.Tool.
func (t *Tool) Run(ctx context.Context, input string) (string, error) {
	if t.supabaseURL == "" || t.supabaseKey == "" {
		return "", tool.NewToolError(t.name, "supabase url or key not configured", tool.CodeMissingCredential)
	}

	vector, err := t.embedder.Embed(ctx, input)
	if err != nil {
		return "", tool.WrapError(t.name, err)
	}

	rows, err := t.match(ctx, vector)
	if err != nil {
		return "", err
	}

	if len(rows) == 0 {
		return "No matching code chunks found.", nil
	}

	results := make([]core.SearchResult, len(rows))
	for i, row := range rows {
		content := row.Content
		if len(content) > t.maxChunkChars {
			content = content[:t.maxChunkChars] + "\n... (truncated)"
		}
		results[i] = core.SearchResult{
			ID:      row.FilePath,
			Content: content,
			Score:   row.Similarity,
		}
	}

	var blocks []string
	for _, res := range results {
		blocks = append(blocks, fmt.Sprintf("File: %s (relevance %.2f)\n```\n%s\n```", res.ID, res.Score, strings.TrimRight(res.Content, "\n")))
	}

	return strings.Join(blocks, "\n\n"), nil
}

func (t *Tool) match(ctx context.Context, vector []float64) ([]matchRow, error) {
	payload, err := json.Marshal(matchRequest{
		QueryEmbedding: vector,
		MatchThreshold: t.matchThreshold,
		MatchCount:     t.matchCount,
	})
	if err != nil {
		return nil, tool.WrapError(t.name, err)
	}

	url := t.supabaseURL + "/rest/v1/rpc/match_code_chunks"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, tool.WrapError(t.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", t.supabaseKey)
	req.Header.Set("Authorization", "Bearer "+t.supabaseKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, tool.NewToolError(t.name, err.Error(), tool.CodeHTTP)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, tool.NewToolError(t.name, fmt.Sprintf("supabase rpc returned status %d", resp.StatusCode), tool.CodeHTTP)
	}

	var rows []matchRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, tool.WrapError(t.name, err)
	}

	return rows, nil
}
