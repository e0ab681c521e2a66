package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintfilter/pkg/lint"
)

func TestExitPolicyAcceptable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy lint.ExitPolicy
		code   int
		want   bool
	}{
		{"default accepts zero", lint.DefaultExitPolicy(), 0, true},
		{"default accepts one", lint.DefaultExitPolicy(), 1, true},
		{"default rejects two", lint.DefaultExitPolicy(), 2, false},
		{"default rejects many", lint.DefaultExitPolicy(), 127, false},
		{"zero value equals default", lint.ExitPolicy{}, 1, true},
		{"custom codes accepted", lint.ExitPolicy{ReportExitCodes: []int{0, 1, 2}}, 2, true},
		{"custom codes still accept zero", lint.ExitPolicy{ReportExitCodes: []int{2}}, 0, true},
		{"custom codes reject others", lint.ExitPolicy{ReportExitCodes: []int{2}}, 1, false},
		{"fatal rejects one", lint.ExitPolicy{Fatal: true}, 1, false},
		{"fatal rejects listed codes", lint.ExitPolicy{ReportExitCodes: []int{1, 2}, Fatal: true}, 2, false},
		{"fatal still accepts zero", lint.ExitPolicy{Fatal: true}, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.policy.Acceptable(tc.code))
		})
	}
}

func TestNewExecEngine(t *testing.T) {
	t.Parallel()

	t.Run("parses shell quoting", func(t *testing.T) {
		t.Parallel()

		engine, err := lint.NewExecEngine(`sass-lint -q --verbose 'my config'`, lint.ExecOptions{})
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("empty command rejected", func(t *testing.T) {
		t.Parallel()

		_, err := lint.NewExecEngine("", lint.ExecOptions{})
		assert.Error(t, err)
	})

	t.Run("unterminated quote rejected", func(t *testing.T) {
		t.Parallel()

		_, err := lint.NewExecEngine(`sass-lint 'unterminated`, lint.ExecOptions{})
		assert.Error(t, err)
	})
}

func TestParseReports(t *testing.T) {
	t.Parallel()

	t.Run("array of file reports", func(t *testing.T) {
		t.Parallel()

		out := `[
			{"filePath": "a.scss", "messages": [{"ruleId": "no-ids", "severity": 2, "line": 1, "column": 1, "message": "x"}], "warningCount": 0, "errorCount": 1},
			{"filePath": "b.scss", "messages": [], "warningCount": 0, "errorCount": 0}
		]`

		reports, err := lint.ParseReports([]byte(out))
		require.NoError(t, err)
		require.Len(t, reports, 2)
		assert.Equal(t, "a.scss", reports[0].FilePath)
		assert.Equal(t, 1, reports[0].ErrorCount)
		assert.Empty(t, reports[1].Messages)
	})

	t.Run("single object", func(t *testing.T) {
		t.Parallel()

		reports, err := lint.ParseReports([]byte(`{"filePath": "a.scss", "messages": []}`))
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, "a.scss", reports[0].FilePath)
	})

	t.Run("blank output means no reports", func(t *testing.T) {
		t.Parallel()

		for _, out := range []string{"", "   ", "\n\n"} {
			reports, err := lint.ParseReports([]byte(out))
			require.NoError(t, err)
			assert.Empty(t, reports)
		}
	})

	t.Run("null entries dropped", func(t *testing.T) {
		t.Parallel()

		reports, err := lint.ParseReports([]byte(`[null, {"filePath": "a.scss"}]`))
		require.NoError(t, err)
		require.Len(t, reports, 1)
	})

	t.Run("garbage is malformed output", func(t *testing.T) {
		t.Parallel()

		for _, out := range []string{"not json", "[{", `{"messages": "nope"}`} {
			_, err := lint.ParseReports([]byte(out))
			require.Error(t, err, "input %q", out)
			assert.ErrorIs(t, err, lint.ErrMalformedOutput)
		}
	})
}
