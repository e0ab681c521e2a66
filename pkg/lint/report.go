// Package lint defines the result model for external style linters and the
// adapters that invoke them.
//
// The Engine interface is the boundary to the real lint tool. Everything else
// in the package is shape-normalization around it: engines in the wild
// disagree about severity encodings, absent message lists, and stale counts,
// so reports pass through Normalize before anything downstream reads them.
package lint

import (
	"encoding/json"
	"fmt"
)

// Severity encodes how serious a message is, using the numeric convention of
// style linters: 1 is a warning, 2 is an error.
type Severity int

const (
	SeverityWarning Severity = 1
	SeverityError   Severity = 2
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// UnmarshalJSON accepts both the numeric form and the string form.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Severity(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("severity: %w", err)
	}
	*s = ParseSeverity(str)
	return nil
}

// ParseSeverity coerces a loosely typed severity value (as found in engine
// output or inline configuration) into a Severity. Unrecognized values
// default to warning rather than failing the report.
func ParseSeverity(v any) Severity {
	switch val := v.(type) {
	case Severity:
		return val
	case int:
		if val == int(SeverityError) {
			return SeverityError
		}
		return SeverityWarning
	case float64:
		if int(val) == int(SeverityError) {
			return SeverityError
		}
		return SeverityWarning
	case string:
		switch val {
		case "error", "2":
			return SeverityError
		default:
			return SeverityWarning
		}
	default:
		return SeverityWarning
	}
}

// Message is a single issue reported against one position in a file.
type Message struct {
	// RuleID identifies the rule that produced this message.
	RuleID string `json:"ruleId"`

	// Severity indicates whether this is a warning or an error.
	Severity Severity `json:"severity"`

	// Line is the 1-based line number of the issue.
	Line int `json:"line"`

	// Column is the 1-based column number of the issue.
	Column int `json:"column"`

	// Text is the human-readable description.
	Text string `json:"message"`
}

// Report holds all messages the engine produced for one file. The JSON shape
// matches the per-file result objects emitted by style linters.
type Report struct {
	// FilePath is the path the messages are reported against, normally the
	// file's path relative to the source tree root.
	FilePath string `json:"filePath"`

	// Messages lists the issues found. Never nil after Normalize.
	Messages []Message `json:"messages"`

	// WarningCount is the number of warning-severity messages.
	WarningCount int `json:"warningCount"`

	// ErrorCount is the number of error-severity messages.
	ErrorCount int `json:"errorCount"`
}

// HasMessages returns true if any issues were reported.
func (r *Report) HasMessages() bool {
	return r != nil && len(r.Messages) > 0
}

// IssueCount returns the total number of messages.
func (r *Report) IssueCount() int {
	if r == nil {
		return 0
	}
	return len(r.Messages)
}

// Recount recomputes WarningCount and ErrorCount from Messages. Counts in
// engine output are advisory; the message list is authoritative.
func (r *Report) Recount() {
	var warnings, errors int
	for _, m := range r.Messages {
		if m.Severity == SeverityError {
			errors++
		} else {
			warnings++
		}
	}
	r.WarningCount = warnings
	r.ErrorCount = errors
}

// Clone returns a deep copy of the report. Cached reports are cloned before
// being handed to callers so one consumer's mutation cannot leak into the
// cache.
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}
	out := &Report{
		FilePath:     r.FilePath,
		Messages:     make([]Message, len(r.Messages)),
		WarningCount: r.WarningCount,
		ErrorCount:   r.ErrorCount,
	}
	copy(out.Messages, r.Messages)
	return out
}

// Normalize repairs the shape irregularities engines are known to produce:
// a nil report becomes an empty one, a nil message list becomes an empty
// slice, a missing file path is filled from relPath, and the counts are
// recomputed from the messages.
func Normalize(r *Report, relPath string) *Report {
	if r == nil {
		r = &Report{}
	}
	if r.Messages == nil {
		r.Messages = []Message{}
	}
	if r.FilePath == "" {
		r.FilePath = relPath
	}
	r.Recount()
	return r
}
