package schema

import "time"

// ReportSummary holds aggregate counters derived from a set of results.
// It is never mutated independently; use BuildSummary.
type ReportSummary struct {
	TotalChecks   int
	Passed        int
	Failed        int
	Warnings      int
	Skipped       int
	CriticalCount int
	WarningCount  int
	InfoCount     int
}

// ActionItem is a prioritized, deduplicated remediation instruction
// surfaced at report level. Lower priority means more urgent.
type ActionItem struct {
	Priority    int
	Description string
	Commands    []string
	Category    string
}

// TestReport is the top-level diagnostic artifact for one orchestrator run.
// It is immutable after construction and is not persisted by the framework
// itself; persistence, if any, is the caller's responsibility.
type TestReport struct {
	ProjectName string
	TestDate    time.Time
	Results     []TestResult
	Summary     ReportSummary
	ActionItems []ActionItem
}

// BuildSummary reduces a set of results into aggregate counters.
func BuildSummary(results []TestResult) ReportSummary {
	summary := ReportSummary{TotalChecks: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			summary.Passed++
		case StatusFail:
			summary.Failed++
		case StatusWarning:
			summary.Warnings++
		case StatusSkip:
			summary.Skipped++
		}
		for _, issue := range r.Issues {
			switch issue.Severity {
			case SeverityCritical:
				summary.CriticalCount++
			case SeverityWarning:
				summary.WarningCount++
			case SeverityInfo:
				summary.InfoCount++
			}
		}
	}
	return summary
}

// AllIssues flattens every issue across all results in result order.
func (r *TestReport) AllIssues() []Issue {
	var issues []Issue
	for _, result := range r.Results {
		issues = append(issues, result.Issues...)
	}
	return issues
}

// AllFixes flattens every fix across all results in result order.
func (r *TestReport) AllFixes() []Fix {
	var fixes []Fix
	for _, result := range r.Results {
		fixes = append(fixes, result.Fixes...)
	}
	return fixes
}
