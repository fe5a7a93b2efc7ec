// Package wikipedia implements a tool that looks up article summaries via the
// MediaWiki API.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hupe1980/agentkit/tool"
)

const (
	defaultBaseURL = "https://en.wikipedia.org/w/api.php"
	defaultName    = "WikipediaSearch"
)

// Options configure the Wikipedia tool.
type Options struct {
	// Name overrides the registered tool name.
	Name string
	// BaseURL overrides the MediaWiki API endpoint (used in tests).
	BaseURL string
	// MaxChars truncates the returned extract.
	MaxChars int
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// Tool fetches the plain-text intro extract of the article matching the
// input. When no article title matches exactly, it falls back to an
// opensearch query and suggests the closest titles.
type Tool struct {
	name     string
	baseURL  string
	maxChars int
	client   *http.Client
}

// New creates the Wikipedia tool.
func New(optFns ...func(o *Options)) *Tool {
	opts := Options{
		Name:       defaultName,
		BaseURL:    defaultBaseURL,
		MaxChars:   1500,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Tool{
		name:     opts.Name,
		baseURL:  opts.BaseURL,
		maxChars: opts.MaxChars,
		client:   opts.HTTPClient,
	}
}

// Name implements tool.Tool.
func (t *Tool) Name() string { return t.name }

// Description implements tool.Tool.
func (t *Tool) Description() string {
	return "Look up an article summary on Wikipedia. Input: an article title or topic."
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Run implements tool.Tool.
func (t *Tool) Run(ctx context.Context, input string) (string, error) {
	extract, title, err := t.fetchExtract(ctx, input)
	if err != nil {
		return "", err
	}

	if extract != "" {
		return fmt.Sprintf("%s\n\n%s", title, t.truncate(extract)), nil
	}

	titles, err := t.openSearch(ctx, input)
	if err != nil {
		return "", err
	}
	if len(titles) == 0 {
		return fmt.Sprintf("No Wikipedia article found for %q.", input), nil
	}

	// Retry with the best opensearch match before giving up.
	extract, title, err = t.fetchExtract(ctx, titles[0])
	if err != nil {
		return "", err
	}
	if extract != "" {
		return fmt.Sprintf("%s\n\n%s", title, t.truncate(extract)), nil
	}

	return fmt.Sprintf("No extract available. Closest article titles: %s", strings.Join(titles, ", ")), nil
}

func (t *Tool) fetchExtract(ctx context.Context, title string) (extract, resolved string, err error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("format", "json")
	params.Set("titles", title)

	var parsed extractResponse
	if err := t.getJSON(ctx, params, &parsed); err != nil {
		return "", "", err
	}

	for _, page := range parsed.Query.Pages {
		if page.Extract != "" {
			return page.Extract, page.Title, nil
		}
	}

	return "", "", nil
}

func (t *Tool) openSearch(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "opensearch")
	params.Set("limit", "3")
	params.Set("format", "json")
	params.Set("search", query)

	// The opensearch response is a positional array:
	// [query, [titles], [descriptions], [urls]].
	var raw []json.RawMessage
	if err := t.getJSON(ctx, params, &raw); err != nil {
		return nil, err
	}
	if len(raw) < 2 {
		return nil, nil
	}

	var titles []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return nil, tool.WrapError(t.name, err)
	}

	return titles, nil
}

func (t *Tool) getJSON(ctx context.Context, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return tool.WrapError(t.name, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return tool.NewToolError(t.name, err.Error(), tool.CodeHTTP)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return tool.NewToolError(t.name, fmt.Sprintf("mediawiki api returned status %d", resp.StatusCode), tool.CodeHTTP)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return tool.WrapError(t.name, err)
	}

	return nil
}

func (t *Tool) truncate(s string) string {
	if len(s) <= t.maxChars {
		return s
	}
	return s[:t.maxChars] + "..."
}
