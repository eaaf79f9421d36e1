package lint

import (
	"time"

	"schema-tools/internal/diagnostic"
)

// Result is the outcome of linting one file.
type Result struct {
	FilePath  string
	Issues    diagnostic.Diagnostics
	ChecksRun []string
	Duration  time.Duration
}

// Summary counts the issues of a Result.
type Summary struct {
	FilePath    string `json:"filePath"`
	TotalIssues int    `json:"totalIssues"`
	Errors      int    `json:"errors"`
	Warnings    int    `json:"warnings"`
	Info        int    `json:"info"`
	ChecksRun   int    `json:"checksRun"`
	DurationMS  int64  `json:"duration"`
}

// HasErrors reports whether any issue has error severity.
func (r *Result) HasErrors() bool {
	return r.Issues.HasErrors()
}

// BySeverity returns the issues of one severity.
func (r *Result) BySeverity(sev diagnostic.Severity) []diagnostic.Diagnostic {
	return r.Issues.BySeverity(sev)
}

// Visible returns every issue, or only errors when quiet is set.
func (r *Result) Visible(quiet bool) []diagnostic.Diagnostic {
	if quiet {
		return r.Issues.Errors()
	}

	return r.Issues.Items
}

// Summary returns issue counts for the file.
func (r *Result) Summary() Summary {
	return Summary{
		FilePath:    r.FilePath,
		TotalIssues: len(r.Issues.Items),
		Errors:      len(r.Issues.Errors()),
		Warnings:    len(r.Issues.Warnings()),
		Info:        len(r.Issues.Infos()),
		ChecksRun:   len(r.ChecksRun),
		DurationMS:  r.Duration.Milliseconds(),
	}
}

// AnyErrors reports whether any result has an error-severity issue.
func AnyErrors(results []*Result) bool {
	for _, r := range results {
		if r.HasErrors() {
			return true
		}
	}

	return false
}
