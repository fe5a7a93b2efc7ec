// Package reddit implements a tool that searches Reddit submissions via the
// Pushshift API.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/agentkit/tool"
)

const (
	defaultBaseURL = "https://api.pushshift.io/reddit/search/submission/"
	defaultName    = "RedditSearch"
)

// Options configure the Reddit tool.
type Options struct {
	// Name overrides the registered tool name.
	Name string
	// BaseURL overrides the Pushshift endpoint (used in tests).
	BaseURL string
	// MaxResults caps the number of submissions returned.
	MaxResults int
	// Subreddit restricts the search to one subreddit.
	Subreddit string
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// Tool searches Reddit submissions and returns "- title\n  url" lines tagged
// with the subreddit.
type Tool struct {
	name       string
	baseURL    string
	maxResults int
	subreddit  string
	client     *http.Client
}

// New creates the Reddit tool.
func New(optFns ...func(o *Options)) *Tool {
	opts := Options{
		Name:       defaultName,
		BaseURL:    defaultBaseURL,
		MaxResults: 3,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Tool{
		name:       opts.Name,
		baseURL:    opts.BaseURL,
		maxResults: opts.MaxResults,
		subreddit:  opts.Subreddit,
		client:     opts.HTTPClient,
	}
}

// Name implements tool.Tool.
func (t *Tool) Name() string { return t.name }

// Description implements tool.Tool.
func (t *Tool) Description() string {
	return "Search Reddit submissions. Input: a search query."
}

type pushshiftResponse struct {
	Data []struct {
		Title     string `json:"title"`
		URL       string `json:"url"`
		Permalink string `json:"permalink"`
		Subreddit string `json:"subreddit"`
	} `json:"data"`
}

// Run implements tool.Tool.
func (t *Tool) Run(ctx context.Context, input string) (string, error) {
	params := url.Values{}
	params.Set("q", input)
	params.Set("sort", "desc")
	params.Set("size", strconv.Itoa(t.maxResults))
	if t.subreddit != "" {
		params.Set("subreddit", t.subreddit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", tool.WrapError(t.name, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", tool.NewToolError(t.name, err.Error(), tool.CodeHTTP)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", tool.NewToolError(t.name, fmt.Sprintf("pushshift returned status %d", resp.StatusCode), tool.CodeHTTP)
	}

	var parsed pushshiftResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", tool.WrapError(t.name, err)
	}

	if len(parsed.Data) == 0 {
		return "No Reddit submissions found.", nil
	}

	var lines []string
	for _, sub := range parsed.Data {
		link := sub.URL
		if link == "" && sub.Permalink != "" {
			link = "https://reddit.com" + sub.Permalink
		}
		lines = append(lines, fmt.Sprintf("- [r/%s] %s\n  %s", sub.Subreddit, sub.Title, link))
	}

	return strings.Join(lines, "\n"), nil
}
