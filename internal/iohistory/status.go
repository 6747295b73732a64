package iohistory

import (
	"fmt"

	"github.com/migcheck/migcheck/schema"
)

// PrintHistoryStatus prints run-history store statistics to stdout.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Total Issues Recorded: %d\n", status.TotalIssues)
}

// PrintRunRecords prints recorded runs to stdout, one line per run.
func PrintRunRecords(runs []schema.RunRecord) {
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}
	for _, run := range runs {
		fmt.Printf("#%d  %s  %s  %s  checks=%d critical=%d warnings=%d\n",
			run.RunID,
			run.TestDate.Format("2006-01-02 15:04:05"),
			run.ProjectName,
			run.WorstStatus,
			run.Summary.TotalChecks,
			run.Summary.CriticalCount,
			run.Summary.WarningCount)
	}
}
