package parquet

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/migcheck/migcheck/schema"
)

func TestConvertReport(t *testing.T) {
	date := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	report := &schema.TestReport{
		ProjectName: "demo",
		TestDate:    date,
		Results: []schema.TestResult{
			{
				CheckerName: schema.CategoryPath,
				Issues: []schema.Issue{
					{Severity: schema.SeverityCritical, Type: "DRIVE_LETTER",
						FilePath: "app.py", LineNumber: 3,
						Description: `DRIVE_LETTER pattern "C:/"`,
						Suggestion:  "Use a path-join utility"},
					{Severity: schema.SeverityWarning, Type: "PYTHON_VERSION",
						Description: "Python 3.10.4 is below the recommended 3.12.12"},
				},
			},
		},
	}

	records := ConvertReport(report)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "demo", first.ProjectName)
	assert.Equal(t, date, first.TestDate)
	assert.Equal(t, "CRITICAL", first.Severity)
	require.NotNil(t, first.FilePath)
	assert.Equal(t, "app.py", *first.FilePath)
	require.NotNil(t, first.LineNumber)
	assert.Equal(t, int32(3), *first.LineNumber)
	require.NotNil(t, first.Suggestion)

	second := records[1]
	assert.Nil(t, second.FilePath, "environment issues carry no path")
	assert.Nil(t, second.LineNumber)
	assert.Nil(t, second.Suggestion)
}

func TestConvertRunRecords(t *testing.T) {
	runs := []schema.RunRecord{
		{ProjectName: "demo", WorstStatus: schema.StatusFail,
			Summary: schema.ReportSummary{TotalChecks: 5, Failed: 2, CriticalCount: 3}},
	}

	records := ConvertRunRecords(runs)
	require.Len(t, records, 1)
	assert.Equal(t, "FAIL", records[0].WorstStatus)
	assert.Equal(t, int32(5), records[0].TotalChecks)
	assert.Equal(t, int32(3), records[0].CriticalIssues)
}

func TestWriteReport(t *testing.T) {
	report := &schema.TestReport{
		ProjectName: "demo",
		TestDate:    time.Now(),
		Results: []schema.TestResult{
			{CheckerName: schema.CategoryLineEndings, Issues: []schema.Issue{
				{Severity: schema.SeverityWarning, Type: "CRLF", FilePath: "a.txt",
					Description: "CRLF line endings"},
			}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))
	assert.NotZero(t, buf.Len())
	// Parquet files end with the PAR1 magic footer.
	assert.Equal(t, "PAR1", buf.String()[buf.Len()-4:])
}
