// Package websearch implements a Google web search tool backed by the Serper
// API (https://serper.dev).
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hupe1980/agentkit/tool"
)

const (
	defaultBaseURL = "https://google.serper.dev/search"
	defaultName    = "GoogleSearch"
)

// Options configure the search tool.
type Options struct {
	// Name overrides the registered tool name.
	Name string
	// BaseURL overrides the Serper endpoint (used in tests).
	BaseURL string
	// MaxResults caps the number of organic results returned.
	MaxResults int
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// Tool searches Google via Serper and returns "- title\n  url" lines with a
// snippet where available.
type Tool struct {
	name       string
	apiKey     string
	baseURL    string
	maxResults int
	client     *http.Client
}

// New creates the search tool. The API key is explicit configuration; an
// empty key is reported as a credential error at run time, not at
// construction, so a kit can register the tool unconditionally.
func New(apiKey string, optFns ...func(o *Options)) *Tool {
	opts := Options{
		Name:       defaultName,
		BaseURL:    defaultBaseURL,
		MaxResults: 5,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Tool{
		name:       opts.Name,
		apiKey:     apiKey,
		baseURL:    opts.BaseURL,
		maxResults: opts.MaxResults,
		client:     opts.HTTPClient,
	}
}

// Name implements tool.Tool.
func (t *Tool) Name() string { return t.name }

// Description implements tool.Tool.
func (t *Tool) Description() string {
	return "Search Google for current web results. Input: a search query."
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Run implements tool.Tool.
func (t *Tool) Run(ctx context.Context, input string) (string, error) {
	if t.apiKey == "" {
		return "", tool.NewToolError(t.name, "serper api key not configured", tool.CodeMissingCredential)
	}

	payload, err := json.Marshal(map[string]any{"q": input, "num": t.maxResults})
	if err != nil {
		return "", tool.WrapError(t.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", tool.WrapError(t.name, err)
	}
	req.Header.Set("X-API-KEY", t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", tool.NewToolError(t.name, err.Error(), tool.CodeHTTP)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", tool.NewToolError(t.name, fmt.Sprintf("serper returned status %d", resp.StatusCode), tool.CodeHTTP)
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", tool.WrapError(t.name, err)
	}

	if len(parsed.Organic) == 0 {
		return "No web results found.", nil
	}

	var lines []string
	for i, item := range parsed.Organic {
		if i >= t.maxResults {
			break
		}
		line := fmt.Sprintf("- %s\n  %s", item.Title, item.Link)
		if item.Snippet != "" {
			line += "\n  " + item.Snippet
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), nil
}
