// Package teststub renders lint reports as runnable test files.
//
// A generated stub asserts that its source file passed lint: a clean report
// renders as a passing test, a report with issues renders as a failing test
// whose message lists every issue. Projects that run their test suite in CI
// get lint enforcement for free by emitting these stubs next to their tests.
//
// Rendering is a pure function of the inputs. The same path and report
// always produce byte-identical output, which keeps the stubs cacheable
// under content-addressed build caches.
package teststub

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/lintfilter/pkg/lint"
)

// Framework names for the built-in generators.
const (
	FrameworkQUnit = "qunit"
	FrameworkMocha = "mocha"
)

// ErrUnknownFramework is returned by Resolve for a name with no registered
// generator. Resolution happens at construction so a typo in configuration
// fails the build immediately, not at the first processed file.
var ErrUnknownFramework = errors.New("unknown test framework")

// RenderFunc renders one file's report as test source.
type RenderFunc func(relPath string, report *lint.Report) string

// Generator renders test stubs in one framework's style.
type Generator struct {
	name   string
	source string
	render RenderFunc
}

// Resolve returns the built-in generator for a framework name.
func Resolve(name string) (*Generator, error) {
	switch name {
	case FrameworkQUnit:
		return &Generator{name: name, source: qunitTemplate, render: renderQUnit}, nil
	case FrameworkMocha:
		return &Generator{name: name, source: mochaTemplate + mochaFailTemplate, render: renderMocha}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFramework, name)
	}
}

// New returns a custom generator. The source string stands in for the render
// function's code in cache keys: it must change whenever the rendering
// changes, or stale stubs will be replayed from cache.
func New(name, source string, render RenderFunc) *Generator {
	return &Generator{name: name, source: source, render: render}
}

// Name returns the framework name the generator renders for.
func (g *Generator) Name() string { return g.name }

// Render renders the report as test source. A nil report renders as a clean
// pass.
func (g *Generator) Render(relPath string, report *lint.Report) string {
	if report == nil {
		report = &lint.Report{}
	}
	return g.render(relPath, report)
}

// CacheKey identifies the generator's rendering behavior for cache keys.
func (g *Generator) CacheKey() string {
	return "teststub:" + g.name + ":" + g.source
}

// renderMessages builds the human-readable block a failing test carries:
// a header line followed by one "line:column - text (ruleId)" line per
// message. Empty when the report has no messages.
func renderMessages(relPath string, report *lint.Report) string {
	if !report.HasMessages() {
		return ""
	}
	lines := make([]string, 0, len(report.Messages)+1)
	lines = append(lines, relPath+" should pass lint")
	for _, m := range report.Messages {
		lines = append(lines, fmt.Sprintf("%d:%d - %s (%s)", m.Line, m.Column, m.Text, m.RuleID))
	}
	return strings.Join(lines, "\n")
}

// assertionText is the message the generated assertion carries: the full
// message block when there is one, otherwise the bare header.
func assertionText(relPath string, report *lint.Report) string {
	if block := renderMessages(relPath, report); block != "" {
		return block
	}
	return relPath + " should pass lint"
}

// passed reports whether the stub should be a passing test. Only errors
// fail the suite; warnings are reported but do not break the build.
func passed(report *lint.Report) bool {
	return report.ErrorCount == 0
}

// escaper rewrites text for embedding in a single-quoted source literal.
// Backslash must come first so escapes it introduces are not re-escaped.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
)

// escape makes text safe inside a generated string literal.
func escape(text string) string {
	return escaper.Replace(text)
}
