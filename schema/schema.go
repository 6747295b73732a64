// Package schema has the canonical diagnostic models shared by all parts of migcheck.
package schema

import "time"

// Issue represents a single portability defect detected during a check.
// Issues are value objects: they hold no references back to the checker
// or report that produced them.
type Issue struct {
	Severity    Severity  // CRITICAL, WARNING or INFO
	Category    string    // Stable category tag, e.g. "line-endings"
	Type        IssueType // Checker-specific classification, e.g. "DRIVE_LETTER"
	FilePath    string    // Relative path to the offending file; empty for environment-level issues
	LineNumber  int       // 1-based line number; 0 when the issue spans the whole file
	Description string    // Human summary of the defect
	Impact      string    // Why the defect matters for the migration
	Suggestion  string    // Human-readable remediation hint; required for CRITICAL issues
}

// Fix represents one proposed remediation action, loosely tied to an Issue.
type Fix struct {
	IssueID     string    // Loose reference to the originating issue
	Command     string    // Literal shell command, or a comment placeholder
	Description string    // What the command does
	AutoApply   bool      // True only if the command is safe to run unattended
	Risk        RiskLevel // HIGH risk implies AutoApply = false
}

// TestResult is the normalized output of one checker run.
type TestResult struct {
	CheckerName string
	Status      Status
	Message     string
	Issues      []Issue
	Fixes       []Fix
	Timestamp   time.Time
}

// DeriveStatus computes the status implied by a set of issues:
// FAIL iff any CRITICAL issue exists, WARNING iff no CRITICAL but at
// least one WARNING exists, PASS otherwise. SKIP is never derived here;
// it is reserved for checkers that could not run at all.
func DeriveStatus(issues []Issue) Status {
	status := StatusPass
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityCritical:
			return StatusFail
		case SeverityWarning:
			status = StatusWarning
		}
	}
	return status
}

// WorstStatus reduces a set of results to the most severe status,
// ordered FAIL > WARNING > PASS > SKIP. An empty slice yields PASS.
func WorstStatus(results []TestResult) Status {
	worst := StatusPass
	if len(results) == 0 {
		return worst
	}
	worst = results[0].Status
	for _, r := range results[1:] {
		if statusRank[r.Status] > statusRank[worst] {
			worst = r.Status
		}
	}
	return worst
}
