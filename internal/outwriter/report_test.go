package outwriter

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/migcheck/migcheck/internal/contract"
	"github.com/migcheck/migcheck/schema"
)

func sampleReport() *schema.TestReport {
	results := []schema.TestResult{
		{
			CheckerName: schema.CategoryLineEndings,
			Status:      schema.StatusFail,
			Message:     "1 line-ending issue(s) in 4 files",
			Issues: []schema.Issue{
				{Severity: schema.SeverityCritical, Category: schema.CategoryLineEndings,
					Type: "CRLF", FilePath: "run.sh",
					Description: "CRLF line endings (3 of 3 lines CRLF)",
					Suggestion:  "Convert to LF line endings"},
			},
			Fixes: []schema.Fix{
				{IssueID: "line-endings:run.sh", Command: "dos2unix run.sh",
					Description: "Convert run.sh to LF line endings",
					AutoApply:   true, Risk: schema.RiskLow},
			},
		},
		{
			CheckerName: schema.CategoryPath,
			Status:      schema.StatusWarning,
			Message:     "2 non-portable path patterns across 1 files",
			Issues: []schema.Issue{
				{Severity: schema.SeverityWarning, Category: schema.CategoryPath,
					Type: "BACKSLASH", FilePath: "app.py", LineNumber: 7,
					Description: `BACKSLASH pattern "logs\\app.log"`,
					Suggestion:  "Use forward slashes"},
				{Severity: schema.SeverityInfo, Category: schema.CategoryPath,
					Type: "OS_SEP", FilePath: "app.py", LineNumber: 9,
					Description: "OS_SEP pattern \"os.sep\""},
			},
		},
		{
			CheckerName: schema.CategoryConnectivity,
			Status:      schema.StatusSkip,
			Message:     "checker could not run: no network",
		},
	}
	return &schema.TestReport{
		ProjectName: "demo-app",
		TestDate:    time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		Results:     results,
		Summary:     schema.BuildSummary(results),
		ActionItems: []schema.ActionItem{
			{Priority: 1, Description: "Apply 1 line-endings fix(es)",
				Commands: []string{"dos2unix run.sh"}, Category: schema.CategoryLineEndings},
		},
	}
}

func plainConfig() *contract.Config {
	return &contract.Config{UseColors: false, Width: 100}
}

func TestWriteConsoleReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeConsoleReport(&buf, sampleReport(), plainConfig()))
	out := buf.String()

	assert.Contains(t, out, "Migration readiness: demo-app")
	assert.Contains(t, out, "Checks: 3 total, 0 passed, 1 failed, 1 warnings, 1 skipped")
	assert.Contains(t, out, "Issues: 1 critical, 1 warning, 1 info")
	assert.Contains(t, out, "line-endings")
	assert.Contains(t, out, "SKIP")
	assert.Contains(t, out, "CRITICAL (1)")
	assert.Contains(t, out, "WARNING (1)")
	assert.Contains(t, out, "INFO (1)")
	assert.Contains(t, out, "run.sh: CRLF line endings")
	assert.Contains(t, out, "app.py:7")
	assert.Contains(t, out, "-> Convert to LF line endings")
	assert.Contains(t, out, "Action items:")
	assert.Contains(t, out, "Apply 1 line-endings fix(es)")
}

func TestWriteConsoleReportEmojis(t *testing.T) {
	var buf bytes.Buffer
	cfg := plainConfig()
	cfg.UseEmojis = true
	require.NoError(t, writeConsoleReport(&buf, sampleReport(), cfg))
	out := buf.String()

	assert.Contains(t, out, "Overall: ❌ FAIL")
	assert.Contains(t, out, "❌ FAIL")
	assert.Contains(t, out, "⚠️")
	assert.Contains(t, out, "⏭️")

	buf.Reset()
	require.NoError(t, writeConsoleReport(&buf, sampleReport(), plainConfig()))
	plain := buf.String()
	assert.Contains(t, plain, "Overall: FAIL")
	assert.NotContains(t, plain, "❌")
	assert.NotContains(t, plain, "⚠️")
}

func TestWriteConsoleReportClean(t *testing.T) {
	report := &schema.TestReport{
		ProjectName: "clean",
		TestDate:    time.Now(),
		Results: []schema.TestResult{
			{CheckerName: schema.CategoryPath, Status: schema.StatusPass, Message: "ok"},
		},
	}
	report.Summary = schema.BuildSummary(report.Results)

	var buf bytes.Buffer
	require.NoError(t, writeConsoleReport(&buf, report, plainConfig()))
	assert.Contains(t, buf.String(), "No portability issues found.")
}

func TestWriteMarkdownReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMarkdownReport(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "# Migration Readiness Report: demo-app")
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "| Critical issues | 1 |")
	assert.Contains(t, out, "## Checks")
	assert.Contains(t, out, "| line-endings | FAIL | 1 |")
	assert.Contains(t, out, "### CRITICAL (1)")
	assert.Contains(t, out, "`run.sh`")
	assert.Contains(t, out, "`app.py:7`")
	assert.Contains(t, out, "## Action Items")
	assert.Contains(t, out, "- `dos2unix run.sh`")
}

func TestGetMaxPathWidthBounds(t *testing.T) {
	assert.Equal(t, 15, getMaxPathWidth(&contract.Config{Width: 40}))
	assert.Equal(t, 70, getMaxPathWidth(&contract.Config{Width: 500}))
	assert.Equal(t, 55, getMaxPathWidth(&contract.Config{Width: 100}))
}
