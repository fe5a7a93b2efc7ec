// Package hackernews implements a tool that fetches the current Hacker News
// front page via the official Firebase API.
package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hupe1980/agentkit/tool"
)

const (
	defaultBaseURL = "https://hacker-news.firebaseio.com/v0"
	defaultName    = "HackerNews"
)

// Options configure the Hacker News tool.
type Options struct {
	// Name overrides the registered tool name.
	Name string
	// BaseURL overrides the Firebase API endpoint (used in tests).
	BaseURL string
	// MaxStories caps how many top stories are fetched.
	MaxStories int
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// Tool returns the titles and links of the current top stories. The input is
// ignored; the front page has no query parameter.
type Tool struct {
	name       string
	baseURL    string
	maxStories int
	client     *http.Client
}

// New creates the Hacker News tool.
func New(optFns ...func(o *Options)) *Tool {
	opts := Options{
		Name:       defaultName,
		BaseURL:    defaultBaseURL,
		MaxStories: 5,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Tool{
		name:       opts.Name,
		baseURL:    opts.BaseURL,
		maxStories: opts.MaxStories,
		client:     opts.HTTPClient,
	}
}

// Name implements tool.Tool.
func (t *Tool) Name() string { return t.name }

// Description implements tool.Tool.
func (t *Tool) Description() string {
	return "Fetch the current top stories from Hacker News. Input is ignored."
}

type item struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Score int    `json:"score"`
}

// Run implements tool.Tool.
func (t *Tool) Run(ctx context.Context, _ string) (string, error) {
	var ids []int
	if err := t.getJSON(ctx, t.baseURL+"/topstories.json", &ids); err != nil {
		return "", err
	}

	if len(ids) > t.maxStories {
		ids = ids[:t.maxStories]
	}

	var lines []string
	for _, id := range ids {
		var it item
		if err := t.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", t.baseURL, id), &it); err != nil {
			return "", err
		}

		line := fmt.Sprintf("- %s (%d points)", it.Title, it.Score)
		if it.URL != "" {
			line += "\n  " + it.URL
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return "No stories found.", nil
	}

	return strings.Join(lines, "\n"), nil
}

func (t *Tool) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return tool.WrapError(t.name, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return tool.NewToolError(t.name, err.Error(), tool.CodeHTTP)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return tool.NewToolError(t.name, fmt.Sprintf("hacker news api returned status %d", resp.StatusCode), tool.CodeHTTP)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return tool.WrapError(t.name, err)
	}

	return nil
}
