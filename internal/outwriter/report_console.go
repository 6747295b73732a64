package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/migcheck/migcheck/internal/contract"
	"github.com/migcheck/migcheck/schema"
)

// severityOrder drives the grouped issue listing, worst first.
var severityOrder = []schema.Severity{
	schema.SeverityCritical,
	schema.SeverityWarning,
	schema.SeverityInfo,
}

// writeConsoleReport renders the report for terminals: summary counters,
// a per-checker status table, the issue listing grouped by severity and
// the prioritized action items.
func writeConsoleReport(w io.Writer, report *schema.TestReport, cfg *contract.Config) error {
	if err := writeConsoleHeader(w, report, cfg); err != nil {
		return err
	}
	if err := writeCheckerTable(w, report, cfg); err != nil {
		return err
	}
	if err := writeIssueListing(w, report, cfg); err != nil {
		return err
	}
	return writeActionItems(w, report)
}

func writeConsoleHeader(w io.Writer, report *schema.TestReport, cfg *contract.Config) error {
	s := report.Summary
	if _, err := fmt.Fprintf(w, "Migration readiness: %s\n", report.ProjectName); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Date: %s\n", report.TestDate.Format(contract.DateTimeFormat)); err != nil {
		return err
	}
	worst := schema.WorstStatus(report.Results)
	if _, err := fmt.Fprintf(w, "Overall: %s%s\n\n",
		statusGlyph(worst, cfg.UseEmojis), contract.StatusLabel(worst, cfg.UseColors)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Checks: %d total, %d passed, %d failed, %d warnings, %d skipped\nIssues: %d critical, %d warning, %d info\n\n",
		s.TotalChecks, s.Passed, s.Failed, s.Warnings, s.Skipped,
		s.CriticalCount, s.WarningCount, s.InfoCount)
	return err
}

// statusGlyph returns the emoji marker for a status, or "" when emojis
// are disabled.
func statusGlyph(status schema.Status, useEmojis bool) string {
	if !useEmojis {
		return ""
	}
	switch status {
	case schema.StatusPass:
		return "✅ "
	case schema.StatusWarning:
		return "⚠️  "
	case schema.StatusFail:
		return "❌ "
	case schema.StatusSkip:
		return "⏭️  "
	default:
		return ""
	}
}

func writeCheckerTable(w io.Writer, report *schema.TestReport, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Checker", "Status", "Issues", "Message"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, result := range report.Results {
		data = append(data, []string{
			result.CheckerName,
			statusGlyph(result.Status, cfg.UseEmojis) + contract.StatusLabel(result.Status, cfg.UseColors),
			strconv.Itoa(len(result.Issues)),
			contract.TruncateLine(result.Message, 60),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeIssueListing(w io.Writer, report *schema.TestReport, cfg *contract.Config) error {
	issues := report.AllIssues()
	if len(issues) == 0 {
		_, err := fmt.Fprintln(w, "\nNo portability issues found.")
		return err
	}

	pathWidth := getMaxPathWidth(cfg)
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
		if _, err := fmt.Fprintf(w, "\n%s (%d)\n", contract.SeverityLabel(severity, cfg.UseColors), len(group)); err != nil {
			return err
		}
		for _, issue := range group {
			if err := writeIssueLine(w, issue, pathWidth); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeIssueLine(w io.Writer, issue schema.Issue, pathWidth int) error {
	location := issue.FilePath
	if location == "" {
		location = "(environment)"
	} else if issue.LineNumber > 0 {
		location = fmt.Sprintf("%s:%d", location, issue.LineNumber)
	}
	if _, err := fmt.Fprintf(w, "  [%s] %s: %s\n",
		issue.Category, contract.TruncatePath(location, pathWidth), issue.Description); err != nil {
		return err
	}
	if issue.Suggestion != "" {
		if _, err := fmt.Fprintf(w, "      -> %s\n", issue.Suggestion); err != nil {
			return err
		}
	}
	return nil
}

func writeActionItems(w io.Writer, report *schema.TestReport) error {
	if len(report.ActionItems) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nAction items:"); err != nil {
		return err
	}
	for i, item := range report.ActionItems {
		if _, err := fmt.Fprintf(w, "  %d. %s (%d command(s))\n", i+1, item.Description, len(item.Commands)); err != nil {
			return err
		}
	}
	return nil
}
