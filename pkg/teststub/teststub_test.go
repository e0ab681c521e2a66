package teststub_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintfilter/pkg/lint"
	"github.com/yaklabco/lintfilter/pkg/teststub"
)

func failingReport() *lint.Report {
	return lint.Normalize(&lint.Report{
		Messages: []lint.Message{
			{RuleID: "no-ids", Severity: lint.SeverityError, Line: 3, Column: 10, Text: "Don't use IDs in selectors"},
			{RuleID: "indentation", Severity: lint.SeverityWarning, Line: 5, Column: 1, Text: "Expected indentation of 2 spaces"},
		},
	}, "app/styles/a.scss")
}

func TestResolve(t *testing.T) {
	t.Parallel()

	for _, name := range []string{teststub.FrameworkQUnit, teststub.FrameworkMocha} {
		gen, err := teststub.Resolve(name)
		require.NoError(t, err)
		assert.Equal(t, name, gen.Name())
	}
}

func TestResolveUnknown(t *testing.T) {
	t.Parallel()

	gen, err := teststub.Resolve("jasmine")
	assert.Nil(t, gen)
	require.Error(t, err)
	assert.ErrorIs(t, err, teststub.ErrUnknownFramework)
	assert.Contains(t, err.Error(), "jasmine")
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()

	for _, name := range []string{teststub.FrameworkQUnit, teststub.FrameworkMocha} {
		t.Run(name, func(t *testing.T) {
			gen, err := teststub.Resolve(name)
			require.NoError(t, err)

			first := gen.Render("app/styles/a.scss", failingReport())
			second := gen.Render("app/styles/a.scss", failingReport())
			assert.Equal(t, first, second)
		})
	}
}

func TestRenderQUnitPassing(t *testing.T) {
	t.Parallel()

	gen, err := teststub.Resolve(teststub.FrameworkQUnit)
	require.NoError(t, err)

	out := gen.Render("app/styles/clean.scss", &lint.Report{Messages: []lint.Message{}})

	assert.Contains(t, out, "QUnit.module('Lint | app/styles/clean.scss');")
	assert.Contains(t, out, "assert.ok(true, 'app/styles/clean.scss should pass lint');")
	assert.Contains(t, out, "'should pass lint'")
}

func TestRenderQUnitFailing(t *testing.T) {
	t.Parallel()

	gen, err := teststub.Resolve(teststub.FrameworkQUnit)
	require.NoError(t, err)

	out := gen.Render("app/styles/a.scss", failingReport())

	assert.Contains(t, out, "assert.ok(false,")
	assert.Contains(t, out, "a.scss")
	// The message block is embedded with literal \n separators, one line
	// per message.
	assert.Contains(t, out, `app/styles/a.scss should pass lint\n`)
	assert.Contains(t, out, `3:10 - Don\'t use IDs in selectors (no-ids)`)
	assert.Contains(t, out, `5:1 - Expected indentation of 2 spaces (indentation)`)
}

func TestRenderQUnitWarningsStillPass(t *testing.T) {
	t.Parallel()

	gen, err := teststub.Resolve(teststub.FrameworkQUnit)
	require.NoError(t, err)

	report := lint.Normalize(&lint.Report{
		Messages: []lint.Message{
			{RuleID: "indentation", Severity: lint.SeverityWarning, Line: 2, Column: 1, Text: "Expected indentation"},
		},
	}, "w.scss")

	out := gen.Render("w.scss", report)

	// Warnings show in the assertion text but do not fail the test.
	assert.Contains(t, out, "assert.ok(true,")
	assert.Contains(t, out, "2:1 - Expected indentation (indentation)")
}

func TestRenderMochaPassing(t *testing.T) {
	t.Parallel()

	gen, err := teststub.Resolve(teststub.FrameworkMocha)
	require.NoError(t, err)

	out := gen.Render("app/styles/clean.scss", nil)

	assert.Contains(t, out, "describe('Lint | app/styles/clean.scss', function() {")
	assert.Contains(t, out, "// lint passed")
	assert.NotContains(t, out, "chai.AssertionError")
}

func TestRenderMochaFailing(t *testing.T) {
	t.Parallel()

	gen, err := teststub.Resolve(teststub.FrameworkMocha)
	require.NoError(t, err)

	out := gen.Render("app/styles/a.scss", failingReport())

	assert.Contains(t, out, "var error = new chai.AssertionError(")
	assert.Contains(t, out, "error.stack = undefined;")
	assert.Contains(t, out, "throw error;")
	assert.Contains(t, out, `3:10 - Don\'t use IDs in selectors (no-ids)`)
	assert.NotContains(t, out, "// lint passed")
}

func TestRenderEscaping(t *testing.T) {
	t.Parallel()

	report := lint.Normalize(&lint.Report{
		Messages: []lint.Message{
			{
				RuleID:   "quotes",
				Severity: lint.SeverityError,
				Line:     1,
				Column:   1,
				Text:     "prefer 'single' over \"double\"\nand no \\ backslashes\r",
			},
		},
	}, `odd'name.scss`)

	// Raw newlines inside a string literal would break the stub, so the
	// rendered output must have exactly the template's line structure.
	wantLines := map[string]int{
		teststub.FrameworkQUnit: 5,
		teststub.FrameworkMocha: 7,
	}

	for _, name := range []string{teststub.FrameworkQUnit, teststub.FrameworkMocha} {
		t.Run(name, func(t *testing.T) {
			gen, err := teststub.Resolve(name)
			require.NoError(t, err)

			out := gen.Render(`odd'name.scss`, report)

			assert.Contains(t, out, `odd\'name.scss`)
			assert.Contains(t, out, `prefer \'single\' over \"double\"\nand no \\ backslashes\r`)
			assert.NotContains(t, out, "\r")
			assert.Equal(t, wantLines[name], strings.Count(out, "\n"))
		})
	}
}

func TestGeneratorCacheKey(t *testing.T) {
	t.Parallel()

	qunit, err := teststub.Resolve(teststub.FrameworkQUnit)
	require.NoError(t, err)
	mocha, err := teststub.Resolve(teststub.FrameworkMocha)
	require.NoError(t, err)

	assert.NotEqual(t, qunit.CacheKey(), mocha.CacheKey())

	custom := teststub.New("tape", "tape-v1", func(string, *lint.Report) string { return "" })
	changed := teststub.New("tape", "tape-v2", func(string, *lint.Report) string { return "" })
	assert.NotEqual(t, custom.CacheKey(), changed.CacheKey())
	assert.Contains(t, custom.CacheKey(), "tape")
}

func TestCustomGeneratorRender(t *testing.T) {
	t.Parallel()

	gen := teststub.New("tape", "tape-v1", func(relPath string, report *lint.Report) string {
		return "test('" + relPath + "');\n"
	})

	assert.Equal(t, "tape", gen.Name())
	assert.Equal(t, "test('x.scss');\n", gen.Render("x.scss", nil))
}
