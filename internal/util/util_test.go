package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare array",
			in:   `[{"tool": "HackerNews", "input": "ai"}]`,
			want: `[{"tool": "HackerNews", "input": "ai"}]`,
		},
		{
			name: "fenced with language tag",
			in:   "```json\n[{\"tool\": \"RedditSearch\", \"input\": \"go\"}]\n```",
			want: `[{"tool": "RedditSearch", "input": "go"}]`,
		},
		{
			name: "fenced without language tag",
			in:   "```\n[]\n```",
			want: `[]`,
		},
		{
			name: "surrounding prose",
			in:   "Here is the plan:\n[{\"tool\": \"GoogleSearch\", \"input\": \"news\"}]\nLet me know!",
			want: `[{"tool": "GoogleSearch", "input": "news"}]`,
		},
		{
			name: "nested brackets inside strings",
			in:   `[{"tool": "GoogleSearch", "input": "a ] b"}]`,
			want: `[{"tool": "GoogleSearch", "input": "a ] b"}]`,
		},
		{
			name: "object payload",
			in:   "prefix {\"steps\": []} suffix",
			want: `{"steps": []}`,
		},
		{
			name: "no json at all",
			in:   "I cannot help with that.",
			want: "I cannot help with that.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}
