package pipeline

import (
	"github.com/yaklabco/lintfilter/pkg/cachekey"
	"github.com/yaklabco/lintfilter/pkg/lint"
)

// FileOutcome records what happened to a single walked file.
type FileOutcome struct {
	// Path is the tree-relative source path.
	Path string

	// Destination is the output path the filter assigned, relative to the
	// destination tree. Empty when the file was excluded.
	Destination string

	// Digest is the cache key computed for the file. Empty when the file
	// was excluded or errored before keying.
	Digest cachekey.Digest

	// CacheHit is true when the artifact was replayed from the store
	// instead of being transformed.
	CacheHit bool

	// Written is true when the output file was created or updated.
	Written bool

	// Report contains the file's lint diagnostics.
	// Nil when the file was excluded or errored.
	Report *lint.Report

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a pass.
type Stats struct {
	// FilesWalked is the total number of files seen in the input tree.
	FilesWalked int

	// FilesProcessed is the number of eligible files carried through the
	// transform or replayed from cache.
	FilesProcessed int

	// FilesIgnored is the number of files excluded by the filter, whether
	// by extension or by ignore pattern.
	FilesIgnored int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWritten is the number of output files created or updated.
	FilesWritten int

	// CacheHits is the number of files replayed from the artifact store.
	CacheHits int

	// IssuesTotal is the total number of lint messages across all files.
	IssuesTotal int

	// IssuesBySeverity maps severity names to counts.
	IssuesBySeverity map[string]int

	// FilesWithIssues is the number of files with at least one message.
	FilesWithIssues int
}

// Result is the overall outcome of one pass.
type Result struct {
	// Files contains the outcome for each walked file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the pass.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any error-severity messages occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesBySeverity[lint.SeverityError.String()] > 0
}

// HasIssues reports whether any lint messages were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesTotal > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		IssuesBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Destination == "" {
		r.Stats.FilesIgnored++
		return
	}

	r.Stats.FilesProcessed++

	if outcome.CacheHit {
		r.Stats.CacheHits++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}

	if outcome.Report != nil {
		issueCount := outcome.Report.IssueCount()
		r.Stats.IssuesTotal += issueCount
		if issueCount > 0 {
			r.Stats.FilesWithIssues++
		}
		for _, msg := range outcome.Report.Messages {
			r.Stats.IssuesBySeverity[msg.Severity.String()]++
		}
	}
}
