// Package parquet exports diagnostic reports to Parquet files using
// github.com/parquet-go/parquet-go, for archival and downstream analysis.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/migcheck/migcheck/schema"
)

// IssueRecord is the flattened, columnar form of one diagnostic issue.
type IssueRecord struct {
	// ProjectName identifies the inspected project
	ProjectName string `parquet:"project_name,snappy"`

	// TestDate is when the diagnostic run started (TIMESTAMP, nanosecond precision)
	TestDate time.Time `parquet:"test_date,snappy"`

	// CheckerName is the checker that produced this issue
	CheckerName string `parquet:"checker_name,snappy"`

	// Severity is CRITICAL, WARNING or INFO
	Severity string `parquet:"severity,snappy"`

	// IssueType is the checker-specific classification
	IssueType string `parquet:"issue_type,snappy"`

	// FilePath is the relative path of the offending file (nullable for environment issues)
	FilePath *string `parquet:"file_path,optional,snappy"`

	// LineNumber is the 1-based line (nullable when the issue spans the whole file)
	LineNumber *int32 `parquet:"line_number,optional,snappy"`

	// Description is the human summary of the defect
	Description string `parquet:"description,snappy"`

	// Suggestion is the remediation hint (nullable)
	Suggestion *string `parquet:"suggestion,optional,snappy"`
}

// RunRecord is the flattened, columnar form of one diagnostic run.
type RunRecord struct {
	// ProjectName identifies the inspected project
	ProjectName string `parquet:"project_name,snappy"`

	// TestDate is when the diagnostic run started (TIMESTAMP, nanosecond precision)
	TestDate time.Time `parquet:"test_date,snappy"`

	// WorstStatus is the most severe checker status of the run
	WorstStatus string `parquet:"worst_status,snappy"`

	// TotalChecks is the number of checkers executed
	TotalChecks int32 `parquet:"total_checks,snappy"`

	// Passed, Failed, Warnings and Skipped count checker outcomes
	Passed   int32 `parquet:"passed,snappy"`
	Failed   int32 `parquet:"failed,snappy"`
	Warnings int32 `parquet:"warnings,snappy"`
	Skipped  int32 `parquet:"skipped,snappy"`

	// CriticalIssues, WarningIssues and InfoIssues count issues by severity
	CriticalIssues int32 `parquet:"critical_issues,snappy"`
	WarningIssues  int32 `parquet:"warning_issues,snappy"`
	InfoIssues     int32 `parquet:"info_issues,snappy"`
}

// ConvertReport flattens a report into issue records for export.
func ConvertReport(report *schema.TestReport) []IssueRecord {
	var records []IssueRecord
	for _, result := range report.Results {
		for _, issue := range result.Issues {
			rec := IssueRecord{
				ProjectName: report.ProjectName,
				TestDate:    report.TestDate,
				CheckerName: result.CheckerName,
				Severity:    string(issue.Severity),
				IssueType:   string(issue.Type),
				Description: issue.Description,
			}
			if issue.FilePath != "" {
				path := issue.FilePath
				rec.FilePath = &path
			}
			if issue.LineNumber > 0 {
				line := int32(issue.LineNumber)
				rec.LineNumber = &line
			}
			if issue.Suggestion != "" {
				suggestion := issue.Suggestion
				rec.Suggestion = &suggestion
			}
			records = append(records, rec)
		}
	}
	return records
}

// ConvertRunRecords converts persisted run history into columnar records.
func ConvertRunRecords(runs []schema.RunRecord) []RunRecord {
	records := make([]RunRecord, len(runs))
	for i, run := range runs {
		records[i] = RunRecord{
			ProjectName:    run.ProjectName,
			TestDate:       run.TestDate,
			WorstStatus:    string(run.WorstStatus),
			TotalChecks:    int32(run.Summary.TotalChecks),
			Passed:         int32(run.Summary.Passed),
			Failed:         int32(run.Summary.Failed),
			Warnings:       int32(run.Summary.Warnings),
			Skipped:        int32(run.Summary.Skipped),
			CriticalIssues: int32(run.Summary.CriticalCount),
			WarningIssues:  int32(run.Summary.WarningCount),
			InfoIssues:     int32(run.Summary.InfoCount),
		}
	}
	return records
}

// WriteReport writes the issue-level export of a report to w. The schema
// is inferred from the IssueRecord struct tags.
func WriteReport(w io.Writer, report *schema.TestReport) error {
	writer := parquet.NewGenericWriter[IssueRecord](w)
	if _, err := writer.Write(ConvertReport(report)); err != nil {
		return fmt.Errorf("failed to write issue records: %w", err)
	}
	return writer.Close()
}

// WriteRunHistory writes run-history records to a Parquet file at path.
func WriteRunHistory(runs []schema.RunRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[RunRecord](file)
	if _, err := writer.Write(ConvertRunRecords(runs)); err != nil {
		return fmt.Errorf("failed to write run records: %w", err)
	}
	return writer.Close()
}
