package filter

import (
	"cmp"
	"maps"
	"slices"

	"github.com/yaklabco/lintfilter/pkg/lint"
)

// PassSummary describes the diagnostics one pass flushed, broken down by
// rule. Clean files never reach the accumulator, so Totals.Files counts only
// files that reported issues.
type PassSummary struct {
	Totals lint.Totals
	Rules  map[string]int
}

// HasIssues reports whether the pass flushed any diagnostics.
func (s PassSummary) HasIssues() bool {
	return s.Totals.HasIssues()
}

// RuleCount pairs a rule with the number of times it fired.
type RuleCount struct {
	RuleID string
	Count  int
}

// TopRules returns the most frequent rules, highest count first. Ties order
// alphabetically by rule ID. n limits the result; n <= 0 means no limit.
func (s PassSummary) TopRules(n int) []RuleCount {
	counts := make([]RuleCount, 0, len(s.Rules))
	for id, count := range s.Rules {
		counts = append(counts, RuleCount{RuleID: id, Count: count})
	}
	slices.SortFunc(counts, func(left, right RuleCount) int {
		if result := cmp.Compare(right.Count, left.Count); result != 0 {
			return result
		}
		return cmp.Compare(left.RuleID, right.RuleID)
	})
	if n > 0 && n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

// Summarize computes a PassSummary over a batch of reports. Messages without
// a rule ID count toward the totals but not the per-rule breakdown.
func Summarize(reports []*lint.Report) PassSummary {
	summary := PassSummary{
		Totals: lint.Summarize(reports),
		Rules:  make(map[string]int),
	}
	for _, report := range reports {
		if report == nil {
			continue
		}
		for _, msg := range report.Messages {
			if msg.RuleID == "" {
				continue
			}
			summary.Rules[msg.RuleID]++
		}
	}
	return summary
}

// clone returns a copy safe to hand out of the accumulator's lock.
func (s PassSummary) clone() PassSummary {
	s.Rules = maps.Clone(s.Rules)
	return s
}
