package schema

import "time"

// HistoryStatus represents the status of the run-history store.
type HistoryStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRuns     int       `json:"total_runs"`
	LastRunID     int64     `json:"last_run_id"`
	LastRunTime   time.Time `json:"last_run_time"`
	OldestRunTime time.Time `json:"oldest_run_time"`
	TotalIssues   int       `json:"total_issues"`
}

// RunRecord represents one persisted diagnostic run.
type RunRecord struct {
	RunID       int64
	ProjectName string
	TestDate    time.Time
	WorstStatus Status
	Summary     ReportSummary
}
