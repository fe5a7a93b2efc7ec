package core

// SearchResult is a retrieved item from a vector or memory lookup with a
// relevance score and arbitrary metadata. Tools that query external indexes
// (code search, semantic memory) normalize their hits into this shape.
type SearchResult struct {
	ID       string
	Content  string
	Score    float64
	Metadata map[string]any
}
