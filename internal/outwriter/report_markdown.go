package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/migcheck/migcheck/internal/contract"
	"github.com/migcheck/migcheck/schema"
)

// writeMarkdownReport renders the report as structured markdown with
// headed sections mirroring the console layout, suitable for archival.
func writeMarkdownReport(w io.Writer, report *schema.TestReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Migration Readiness Report: %s\n\n", report.ProjectName)
	fmt.Fprintf(&b, "Date: %s\n\n", report.TestDate.Format(contract.DateTimeFormat))

	s := report.Summary
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total checks | %d |\n", s.TotalChecks)
	fmt.Fprintf(&b, "| Passed | %d |\n", s.Passed)
	fmt.Fprintf(&b, "| Failed | %d |\n", s.Failed)
	fmt.Fprintf(&b, "| Warnings | %d |\n", s.Warnings)
	fmt.Fprintf(&b, "| Skipped | %d |\n", s.Skipped)
	fmt.Fprintf(&b, "| Critical issues | %d |\n", s.CriticalCount)
	fmt.Fprintf(&b, "| Warning issues | %d |\n", s.WarningCount)
	fmt.Fprintf(&b, "| Info issues | %d |\n\n", s.InfoCount)

	b.WriteString("## Checks\n\n")
	b.WriteString("| Checker | Status | Issues | Message |\n|---|---|---|---|\n")
	for _, result := range report.Results {
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n",
			result.CheckerName, result.Status, len(result.Issues), escapePipes(result.Message))
	}
	b.WriteString("\n")

	issues := report.AllIssues()
	if len(issues) > 0 {
		b.WriteString("## Issues\n\n")
		for _, severity := range severityOrder {
			var group []schema.Issue
			for _, issue := range issues {
				if issue.Severity == severity {
					group = append(group, issue)
				}
			}
			if len(group) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s (%d)\n\n", severity, len(group))
			for _, issue := range group {
				location := issue.FilePath
				if location == "" {
					location = "environment"
				} else if issue.LineNumber > 0 {
					location = fmt.Sprintf("%s:%d", location, issue.LineNumber)
				}
				fmt.Fprintf(&b, "- **%s** `%s`: %s", issue.Category, location, escapePipes(issue.Description))
				if issue.Suggestion != "" {
					fmt.Fprintf(&b, " (fix: %s)", escapePipes(issue.Suggestion))
				}
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	if len(report.ActionItems) > 0 {
		b.WriteString("## Action Items\n\n")
		for i, item := range report.ActionItems {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item.Description)
			for _, cmd := range item.Commands {
				fmt.Fprintf(&b, "   - `%s`\n", cmd)
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
