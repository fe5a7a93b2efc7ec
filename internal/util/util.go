// Package util holds small internal helpers shared across packages.
package util

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh UUID string used for session and cycle identifiers.
func NewID() string { return uuid.NewString() }

// ExtractJSON strips the markdown fencing and surrounding prose models like
// to wrap JSON payloads in and returns the innermost JSON value. It looks for
// a ```json ... ``` block first, then falls back to the first '[' or '{' and
// its matching closing bracket. The result is not validated; callers must
// still unmarshal it.
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)

	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		// Skip an optional language tag like "json"
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			first := strings.TrimSpace(rest[:nl])
			if first == "json" || first == "JSON" || first == "" {
				rest = rest[nl+1:]
			}
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		s = strings.TrimSpace(rest)
	}

	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return s
	}

	open := s[start]
	var close byte
	if open == '[' {
		close = ']'
	} else {
		close = '}'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return s[start:]
}
