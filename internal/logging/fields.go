// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldFiles  = "files"
	FieldInput  = "input"
	FieldOutput = "output"

	// Filter fields.
	FieldDigest    = "digest"
	FieldCacheHit  = "cache_hit"
	FieldGenerator = "generator"
	FieldFormatter = "formatter"
	FieldEngine    = "engine"
	FieldFormat    = "format"

	// Pass fields.
	FieldPass    = "pass"
	FieldJobs    = "jobs"
	FieldElapsed = "elapsed"

	// Statistics fields.
	FieldFilesProcessed  = "files_processed"
	FieldFilesIgnored    = "files_ignored"
	FieldFilesWithIssues = "files_with_issues"
	FieldIssuesTotal     = "issues_total"
	FieldCacheHits       = "cache_hits"

	// Exec fields.
	FieldCommand  = "command"
	FieldExitCode = "exit_code"
)
