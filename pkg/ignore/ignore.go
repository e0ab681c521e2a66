// Package ignore provides glob-based path exclusion for filter eligibility.
//
// Patterns use shell-glob semantics: `*` matches within a path segment, `**`
// matches across segments, `?` matches a single character, and bracket classes
// are supported. Matching is always against slash-separated relative paths.
package ignore

import (
	"path/filepath"

	"github.com/gobwas/glob"
)

// Matcher holds a compiled set of ignore patterns.
//
// A zero-value Matcher matches nothing. Construction never fails: patterns
// that do not compile are dropped, matching the lenient treatment of
// malformed ignore configuration.
type Matcher struct {
	patterns []string
	globs    []glob.Glob
}

// NewMatcher compiles the given patterns into a Matcher.
// Empty and invalid patterns are skipped.
func NewMatcher(patterns []string) *Matcher {
	m := &Matcher{}
	for _, p := range patterns {
		if p == "" {
			continue
		}
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			continue
		}
		m.patterns = append(m.patterns, p)
		m.globs = append(m.globs, g)
	}
	return m
}

// Patterns returns the patterns that compiled successfully, in order.
func (m *Matcher) Patterns() []string {
	out := make([]string, len(m.patterns))
	copy(out, m.patterns)
	return out
}

// Empty reports whether the matcher has no usable patterns.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.globs) == 0
}

// Match reports whether relPath matches any pattern.
// It short-circuits on the first match and has no side effects.
func (m *Matcher) Match(relPath string) bool {
	if m.Empty() {
		return false
	}
	path := filepath.ToSlash(relPath)
	for _, g := range m.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Ignored is the one-shot form of Matcher: it reports whether relPath matches
// any of the given patterns. The patterns value may be a single glob string,
// a sequence of globs ([]string or []any with string elements), or nil.
// Any other shape is treated as "no ignore rule" rather than an error.
func Ignored(relPath string, patterns any) bool {
	return NewMatcher(Normalize(patterns)).Match(relPath)
}

// Normalize coerces a loosely-typed ignore value into a pattern slice.
//
// Accepted shapes:
//   - string: a single pattern
//   - []string: used as-is
//   - []any: string elements kept, others dropped
//
// Anything else (including nil) normalizes to no patterns.
func Normalize(patterns any) []string {
	switch v := patterns.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		out := make([]string, 0, len(v))
		for _, p := range v {
			if p != "" {
				out = append(out, p)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
