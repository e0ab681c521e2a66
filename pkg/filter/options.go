package filter

import (
	"fmt"

	"github.com/yaklabco/lintfilter/pkg/ignore"
	"github.com/yaklabco/lintfilter/pkg/lint"
	"github.com/yaklabco/lintfilter/pkg/teststub"
)

// Configuration keys recognized at construction. Anything else passes
// through to the lint engine untouched.
const (
	optionConfig        = "config"
	optionTestGenerator = "testGenerator"
	optionFiles         = "files"
	optionIgnore        = "ignore"
	optionReportHook    = "reportHook"
)

// DefaultExtensions are the source suffixes processed when none are given.
var DefaultExtensions = []string{"sass", "scss"}

const (
	// DefaultTargetExtension is the output suffix when no test generator is
	// active: content flows through under its stylesheet extension.
	DefaultTargetExtension = "scss"

	// TestTargetExtension is the output suffix when a test generator is
	// active, so generated suites land next to the app's other tests.
	TestTargetExtension = "lint-test.js"
)

// ReportHook is a function-valued configuration option invoked for every
// report the filter forwards. Source is the hook's textual identity and feeds
// the cache key, so changing the hook's logic invalidates cached results.
type ReportHook struct {
	Source string
	Fn     func(*lint.Report)
}

// CacheKey makes the hook serializable for cache keying by its source text.
func (h *ReportHook) CacheKey() string {
	return "hook:" + h.Source
}

// Options is the explicit configuration surface of the filter. Fields mirror
// the loosely-typed mapping hosts pass; ParseOptions converts one into the
// other.
type Options struct {
	// Extensions are the eligible source suffixes, without dot.
	// Empty means DefaultExtensions.
	Extensions []string

	// ConfigPath names an external rule-config file for the lint engine.
	ConfigPath string

	// TestGenerator selects a registered stub style by name ("qunit" or
	// "mocha"). Empty means output passes through unchanged.
	TestGenerator string

	// Generator supplies a custom stub generator directly. Takes precedence
	// over TestGenerator.
	Generator *teststub.Generator

	// IgnorePatterns are globs excluding matching paths from processing.
	IgnorePatterns []string

	// Hook, when set, observes every forwarded report.
	Hook *ReportHook

	// Passthrough carries engine-specific options the filter does not
	// interpret, e.g. "formatter" or "output-file".
	Passthrough map[string]any
}

// ParseOptions converts a host configuration mapping into Options.
//
// Known keys are validated eagerly: "config" and "testGenerator" must be
// strings. Ignore patterns live under files.ignore as a glob string or a
// sequence of globs; malformed shapes there mean "no ignore rule" rather than
// an error. Unknown keys become engine passthrough.
func ParseOptions(config map[string]any) (Options, error) {
	var opts Options
	for key, value := range config {
		switch key {
		case optionConfig:
			s, ok := value.(string)
			if !ok {
				return Options{}, fmt.Errorf("option %q: expected string, got %T", key, value)
			}
			opts.ConfigPath = s
		case optionTestGenerator:
			s, ok := value.(string)
			if !ok {
				return Options{}, fmt.Errorf("option %q: expected string, got %T", key, value)
			}
			opts.TestGenerator = s
		case optionFiles:
			opts.IgnorePatterns = ignorePatterns(value)
		case optionReportHook:
			hook, ok := value.(*ReportHook)
			if !ok {
				return Options{}, fmt.Errorf("option %q: expected *ReportHook, got %T", key, value)
			}
			opts.Hook = hook
		default:
			if opts.Passthrough == nil {
				opts.Passthrough = make(map[string]any)
			}
			opts.Passthrough[key] = value
		}
	}
	return opts, nil
}

// ignorePatterns digs the ignore globs out of a loosely-typed files section.
func ignorePatterns(files any) []string {
	section, ok := files.(map[string]any)
	if !ok {
		return nil
	}
	return ignore.Normalize(section[optionIgnore])
}

// effectiveExtensions returns Extensions or the default set.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		out := make([]string, len(o.Extensions))
		copy(out, o.Extensions)
		return out
	}
	out := make([]string, len(DefaultExtensions))
	copy(out, DefaultExtensions)
	return out
}
