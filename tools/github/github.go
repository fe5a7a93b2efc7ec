// Package github implements a tool that fetches source files from a GitHub
// repository via the contents API. When wired to a store.Index it runs
// incrementally, returning only files that changed since the last fetch.
package github

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/hupe1980/agentkit/store"
	"github.com/hupe1980/agentkit/tool"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultName    = "GitHubFetcher"
)

// DefaultExtensions are the file extensions fetched when none are configured.
var DefaultExtensions = []string{".go", ".py", ".js", ".ts", ".rs", ".java", ".md"}

// Options configure the GitHub tool.
type Options struct {
	// Name overrides the registered tool name.
	Name string
	// BaseURL overrides the GitHub API endpoint (used in tests).
	BaseURL string
	// Token authenticates requests. Unauthenticated requests work but are
	// tightly rate limited.
	Token string
	// Extensions filters which files are fetched.
	Extensions []string
	// MaxFiles caps how many files are fetched per run.
	MaxFiles int
	// MaxFileBytes truncates individual file contents.
	MaxFileBytes int
	// Index enables incremental fetching. With an index, a second run over
	// the same repository returns only new and modified files.
	Index *store.Index
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// Tool fetches the source files of a repository and returns them as fenced
// blocks keyed by path.
type Tool struct {
	name         string
	baseURL      string
	token        string
	extensions   map[string]struct{}
	maxFiles     int
	maxFileBytes int
	index        *store.Index
	client       *http.Client
}

// New creates the GitHub tool.
func New(optFns ...func(o *Options)) *Tool {
	opts := Options{
		Name:         defaultName,
		BaseURL:      defaultBaseURL,
		Extensions:   DefaultExtensions,
		MaxFiles:     30,
		MaxFileBytes: 20_000,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		exts[ext] = struct{}{}
	}

	return &Tool{
		name:         opts.Name,
		baseURL:      opts.BaseURL,
		token:        opts.Token,
		extensions:   exts,
		maxFiles:     opts.MaxFiles,
		maxFileBytes: opts.MaxFileBytes,
		index:        opts.Index,
		client:       opts.HTTPClient,
	}
}

// Name implements tool.Tool.
func (t *Tool) Name() string { return t.name }

// Description implements tool.Tool.
func (t *Tool) Description() string {
	return "Fetch source files from a GitHub repository. Input: a repository URL or owner/repo slug."
}

type entry struct {
	Path        string `json:"path"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Run implements tool.Tool.
func (t *Tool) Run(ctx context.Context, input string) (string, error) {
	owner, repo, err := parseRepo(input)
	if err != nil {
		return "", tool.WrapError(t.name, err)
	}
	repoURL := fmt.Sprintf("https://github.com/%s/%s", owner, repo)

	entries, err := t.listFiles(ctx, owner, repo, "")
	if err != nil {
		return "", err
	}

	var known map[string]string
	if t.index != nil {
		known, err = t.index.FileHashes(repoURL)
		if err != nil {
			return "", tool.WrapError(t.name, err)
		}
	}

	hashes := make(map[string]string, len(entries))
	var blocks []string
	for _, e := range entries {
		content, err := t.download(ctx, e.DownloadURL)
		if err != nil {
			return "", err
		}

		sum := sha256.Sum256(content)
		hash := hex.EncodeToString(sum[:])
		hashes[e.Path] = hash

		if known != nil && known[e.Path] == hash {
			continue
		}

		if len(content) > t.maxFileBytes {
			content = append(content[:t.maxFileBytes], []byte("\n... (truncated)")...)
		}
		blocks = append(blocks, fmt.Sprintf("## %s\n```\n%s\n```", e.Path, strings.TrimRight(string(content), "\n")))
	}

	if t.index != nil {
		if err := t.index.SaveSnapshot(repoURL, hashes); err != nil {
			return "", tool.WrapError(t.name, err)
		}
	}

	if len(blocks) == 0 {
		if known != nil {
			return fmt.Sprintf("No changes in %s/%s since the last fetch.", owner, repo), nil
		}
		return fmt.Sprintf("No matching files found in %s/%s.", owner, repo), nil
	}

	return strings.Join(blocks, "\n\n"), nil
}

// listFiles walks the repository tree depth first, filtering by extension and
// stopping once the file cap is reached.
func (t *Tool) listFiles(ctx context.Context, owner, repo, dir string) ([]entry, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", t.baseURL, owner, repo, dir)

	var listing []entry
	if err := t.getJSON(ctx, url, &listing); err != nil {
		return nil, err
	}

	var files []entry
	for _, e := range listing {
		switch e.Type {
		case "file":
			if _, ok := t.extensions[path.Ext(e.Path)]; ok {
				files = append(files, e)
			}
		case "dir":
			sub, err := t.listFiles(ctx, owner, repo, e.Path)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
		}
		if len(files) >= t.maxFiles {
			return files[:t.maxFiles], nil
		}
	}

	return files, nil
}

func (t *Tool) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, tool.WrapError(t.name, err)
	}
	t.authorize(req)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, tool.NewToolError(t.name, err.Error(), tool.CodeHTTP)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, tool.NewToolError(t.name, fmt.Sprintf("github returned status %d for %s", resp.StatusCode, url), tool.CodeHTTP)
	}

	return io.ReadAll(resp.Body)
}

func (t *Tool) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return tool.WrapError(t.name, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	t.authorize(req)

	resp, err := t.client.Do(req)
	if err != nil {
		return tool.NewToolError(t.name, err.Error(), tool.CodeHTTP)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return tool.NewToolError(t.name, fmt.Sprintf("github returned status %d for %s", resp.StatusCode, url), tool.CodeHTTP)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return tool.WrapError(t.name, err)
	}

	return nil
}

func (t *Tool) authorize(req *http.Request) {
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
}

func parseRepo(input string) (owner, repo string, err error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "https://github.com/")
	s = strings.TrimPrefix(s, "github.com/")
	s = strings.TrimSuffix(s, ".git")
	s = strings.Trim(s, "/")

	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected a repository URL or owner/repo slug, got %q", input)
	}

	return parts[0], parts[1], nil
}
