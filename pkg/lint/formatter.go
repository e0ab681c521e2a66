package lint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/yaklabco/lintfilter/internal/ui/pretty"
	"github.com/yaklabco/lintfilter/pkg/fsutil"
)

// Formatter names understood by NewFormatter. "stylish" is an alias for the
// text formatter, matching what lint tools commonly call it.
const (
	FormatterText    = "text"
	FormatterStylish = "stylish"
	FormatterJSON    = "json"
)

// Inline option keys honored by WriteResults.
const (
	optionFormatter  = "formatter"
	optionOutputFile = "output-file"
)

// Formatter renders a batch of reports.
type Formatter interface {
	Format(w io.Writer, reports []*Report) error
}

// NewFormatter returns the formatter for a name. An empty name means text.
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "", FormatterText, FormatterStylish:
		return &TextFormatter{}, nil
	case FormatterJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown formatter: %q", name)
	}
}

// WriteResults renders reports with the formatter selected by the inline
// "formatter" option and writes them to the sink selected by "output-file".
// Without an output file the rendering goes to stdout. Files are written
// atomically so a crashed run never leaves a half-written results file.
func WriteResults(ctx context.Context, reports []*Report, opts EngineOptions) error {
	name, _ := opts.Inline[optionFormatter].(string)
	formatter, err := NewFormatter(name)
	if err != nil {
		return err
	}

	path, _ := opts.Inline[optionOutputFile].(string)

	// Console text output fits the terminal; file output never truncates.
	if text, ok := formatter.(*TextFormatter); ok && path == "" {
		text.MaxWidth = terminalWidth(os.Stdout)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, reports); err != nil {
		return fmt.Errorf("format results: %w", err)
	}

	if path != "" {
		if err := fsutil.WriteAtomic(ctx, path, buf.Bytes(), 0); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		return nil
	}

	_, err = os.Stdout.Write(buf.Bytes())
	return err
}

// truncate shortens s to at most max runes, marking the cut with an
// ellipsis. Budgets under eight columns are not worth truncating for.
func truncate(s string, max int) string {
	if max < 8 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// terminalWidth returns the column width of w when it is a terminal, zero
// otherwise.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return 0
}

// TextFormatter writes human-readable output grouped by file.
type TextFormatter struct {
	// Color controls colorized output: "auto" (default), "always", "never".
	Color string

	// MaxWidth, when positive, truncates message text so lines fit the
	// terminal.
	MaxWidth int
}

// Format implements Formatter.
func (f *TextFormatter) Format(w io.Writer, reports []*Report) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(f.Color, w))

	for _, report := range reports {
		if !report.HasMessages() {
			continue
		}

		fmt.Fprintln(w, styles.FormatFileHeader(report.FilePath, len(report.Messages)))
		for _, msg := range report.Messages {
			location := fmt.Sprintf("%d:%d", msg.Line, msg.Column)
			text := msg.Text
			if f.MaxWidth > 0 {
				// Everything on the line except the text is fixed-width:
				// indent, three separators, and the parenthesized rule.
				budget := f.MaxWidth - len(location) - len(msg.Severity.String()) - len(msg.RuleID) - 10
				text = truncate(text, budget)
			}
			fmt.Fprintf(w, "  %s  %s  %s  %s\n",
				styles.Location.Render(location),
				formatSeverity(styles, msg.Severity),
				styles.Message.Render(text),
				styles.RuleID.Render("("+msg.RuleID+")"),
			)
		}
		fmt.Fprintln(w)
	}

	totals := Summarize(reports)
	if totals.Issues == 0 {
		fmt.Fprintln(w, styles.Success.Render("No lint issues found."))
		return nil
	}
	fmt.Fprintln(w, styles.FormatTotalsLine(totals.Issues, totals.Errors, totals.Warnings, totals.FilesWithIssues))
	fmt.Fprintln(w, styles.FormatStatusLine(totals.Errors, totals.Warnings))
	return nil
}

func formatSeverity(styles *pretty.Styles, sev Severity) string {
	switch sev {
	case SeverityError:
		return styles.Error.Render("error")
	default:
		return styles.Warning.Render("warning")
	}
}

// JSONFormatter writes reports as a JSON array of per-file objects, the
// shape other tools parse.
type JSONFormatter struct {
	// Compact disables indentation.
	Compact bool
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, reports []*Report) error {
	if reports == nil {
		reports = []*Report{}
	}
	encoder := json.NewEncoder(w)
	if !f.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(reports); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
