package pretty

import (
	"fmt"
	"strings"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		word := "issues"
		if issueCount == 1 {
			word = "issue"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, word))
	}
	return header
}

// FormatTotalsLine formats pass statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files".
func (s *Styles) FormatTotalsLine(issues, errors, warnings, filesWithIssues int) string {
	issueWord := "issues"
	if issues == 1 {
		issueWord = "issue"
	}

	var severityParts []string
	if errors > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d errors", errors)))
	}
	if warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d warnings", warnings)))
	}

	head := s.Bold.Render(fmt.Sprintf("%d %s", issues, issueWord))
	if len(severityParts) > 0 {
		head += fmt.Sprintf(" (%s)", strings.Join(severityParts, ", "))
	}

	fileWord := wordFiles
	if filesWithIssues == 1 {
		fileWord = wordFile
	}
	return fmt.Sprintf("%s in %d %s", head, filesWithIssues, fileWord)
}

// FormatStatusLine formats the pass verdict from the severity counts.
func (s *Styles) FormatStatusLine(errors, warnings int) string {
	switch {
	case errors > 0:
		return s.Failure.Render("Lint failed with errors")
	case warnings > 0:
		return s.Warning.Render("Lint completed with warnings")
	default:
		return s.Success.Render("Lint passed")
	}
}
