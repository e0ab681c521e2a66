package lint_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintfilter/pkg/lint"
)

func sampleReports() []*lint.Report {
	return []*lint.Report{
		lint.Normalize(&lint.Report{
			Messages: []lint.Message{
				{RuleID: "no-ids", Severity: lint.SeverityError, Line: 3, Column: 10, Text: "Don't use IDs"},
				{RuleID: "indentation", Severity: lint.SeverityWarning, Line: 5, Column: 1, Text: "Bad indent"},
			},
		}, "app/styles/a.scss"),
		lint.Normalize(nil, "app/styles/clean.scss"),
	}
}

func TestNewFormatter(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", lint.FormatterText, lint.FormatterStylish} {
		f, err := lint.NewFormatter(name)
		require.NoError(t, err)
		assert.IsType(t, &lint.TextFormatter{}, f, "name %q", name)
	}

	f, err := lint.NewFormatter(lint.FormatterJSON)
	require.NoError(t, err)
	assert.IsType(t, &lint.JSONFormatter{}, f)

	_, err = lint.NewFormatter("checkstyle")
	assert.Error(t, err)
}

func TestTextFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := &lint.TextFormatter{Color: "never"}
	require.NoError(t, f.Format(&buf, sampleReports()))

	out := buf.String()
	assert.Contains(t, out, "app/styles/a.scss (2 issues)")
	assert.Contains(t, out, "3:10  error  Don't use IDs  (no-ids)")
	assert.Contains(t, out, "5:1  warning  Bad indent  (indentation)")
	assert.Contains(t, out, "2 issues (1 errors, 1 warnings) in 1 file")
	assert.Contains(t, out, "Lint failed with errors")
	// Clean files get no section of their own.
	assert.NotContains(t, out, "clean.scss")
}

func TestTextFormatterWarningsOnly(t *testing.T) {
	t.Parallel()

	report := lint.Normalize(&lint.Report{
		Messages: []lint.Message{
			{RuleID: "indentation", Severity: lint.SeverityWarning, Line: 2, Column: 1, Text: "Bad indent"},
		},
	}, "a.scss")

	var buf bytes.Buffer
	f := &lint.TextFormatter{Color: "never"}
	require.NoError(t, f.Format(&buf, []*lint.Report{report}))

	assert.Contains(t, buf.String(), "Lint completed with warnings")
	assert.NotContains(t, buf.String(), "Lint failed")
}

func TestTextFormatterNoIssues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := &lint.TextFormatter{Color: "never"}
	require.NoError(t, f.Format(&buf, []*lint.Report{lint.Normalize(nil, "clean.scss")}))

	assert.Contains(t, buf.String(), "No lint issues found.")
}

func TestTextFormatterMaxWidth(t *testing.T) {
	t.Parallel()

	report := lint.Normalize(&lint.Report{
		Messages: []lint.Message{
			{RuleID: "no-ids", Severity: lint.SeverityError, Line: 3, Column: 10,
				Text: "This selector identifier is forbidden"},
		},
	}, "a.scss")

	var buf bytes.Buffer
	f := &lint.TextFormatter{Color: "never", MaxWidth: 40}
	require.NoError(t, f.Format(&buf, []*lint.Report{report}))
	assert.Contains(t, buf.String(), "3:10  error  This selecto...  (no-ids)")

	// Zero width disables fitting.
	buf.Reset()
	f = &lint.TextFormatter{Color: "never"}
	require.NoError(t, f.Format(&buf, []*lint.Report{report}))
	assert.Contains(t, buf.String(), "This selector identifier is forbidden")

	// Widths too narrow to matter never truncate.
	buf.Reset()
	f = &lint.TextFormatter{Color: "never", MaxWidth: 20}
	require.NoError(t, f.Format(&buf, []*lint.Report{report}))
	assert.Contains(t, buf.String(), "This selector identifier is forbidden")
}

func TestJSONFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := &lint.JSONFormatter{}
	require.NoError(t, f.Format(&buf, sampleReports()))

	var decoded []*lint.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "app/styles/a.scss", decoded[0].FilePath)
	assert.Equal(t, 1, decoded[0].ErrorCount)
	require.Len(t, decoded[0].Messages, 2)
	assert.Equal(t, lint.SeverityError, decoded[0].Messages[0].Severity)

	// Nil reports slice still encodes as an empty array, never null.
	buf.Reset()
	require.NoError(t, f.Format(&buf, nil))
	assert.Equal(t, "[]", string(bytes.TrimSpace(buf.Bytes())))
}

func TestWriteResultsToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.json")
	opts := lint.EngineOptions{Inline: map[string]any{
		"formatter":   "json",
		"output-file": path,
	}}

	require.NoError(t, lint.WriteResults(context.Background(), sampleReports(), opts))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []*lint.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 2)
}

func TestWriteResultsUnknownFormatter(t *testing.T) {
	t.Parallel()

	opts := lint.EngineOptions{Inline: map[string]any{"formatter": "checkstyle"}}
	assert.Error(t, lint.WriteResults(context.Background(), nil, opts))
}
