package outwriter

import (
	"fmt"
	"os"
	"strings"

	"github.com/migcheck/migcheck/internal/contract"
	"github.com/migcheck/migcheck/schema"
)

// scriptedFix pairs a fix with the severity of its originating issue so
// the script can order commands worst-first.
type scriptedFix struct {
	fix      schema.Fix
	severity schema.Severity
	category string
}

// BuildFixScript assembles a single remediation shell script for the
// whole report. Commands are ordered CRITICAL first and each one is
// guarded by its checker so re-running the script is a no-op once the
// defects are fixed. Manual suggestions appear as comments at the end.
func BuildFixScript(report *schema.TestReport, projectRoot string) string {
	var b strings.Builder

	b.WriteString("#!/bin/bash\n")
	b.WriteString("# Remediation script generated by migcheck\n")
	fmt.Fprintf(&b, "# Project:   %s\n", report.ProjectName)
	fmt.Fprintf(&b, "# Generated: %s\n", report.TestDate.Format(contract.DateTimeFormat))
	b.WriteString("#\n# Issues addressed:\n")
	for _, issue := range report.AllIssues() {
		location := issue.FilePath
		if location == "" {
			location = "environment"
		}
		fmt.Fprintf(&b, "#   [%s] %s: %s\n", issue.Severity, location, issue.Description)
	}
	b.WriteString("\nset -u\n")
	fmt.Fprintf(&b, "cd %s\n", shellQuote(projectRoot))

	auto, manual := collectFixes(report)
	for _, sf := range auto {
		b.WriteString("\n")
		fmt.Fprintf(&b, "# [%s/%s] %s\n", sf.severity, sf.category, sf.fix.Description)
		b.WriteString(sf.fix.Command)
		b.WriteString("\n")
	}

	if len(manual) > 0 {
		b.WriteString("\n# Manual follow-ups (not applied automatically):\n")
		for _, sf := range manual {
			fmt.Fprintf(&b, "#   [%s] %s\n", sf.severity, sf.fix.Description)
		}
	}

	b.WriteString("\necho 'migcheck fixes applied.'\n")
	return b.String()
}

// WriteFixScript writes the remediation script to path, executable.
func WriteFixScript(report *schema.TestReport, projectRoot, path string) error {
	return os.WriteFile(path, []byte(BuildFixScript(report, projectRoot)), 0o755)
}

// collectFixes splits fixes into runnable and manual sets, each ordered
// critical-sourced first with the original order preserved within a tier.
func collectFixes(report *schema.TestReport) (auto, manual []scriptedFix) {
	var autoCritical, autoRest, manualAll []scriptedFix
	for _, result := range report.Results {
		for _, fix := range result.Fixes {
			sf := scriptedFix{
				fix:      fix,
				severity: fixSeverity(result, fix),
				category: result.CheckerName,
			}
			switch {
			case !fix.AutoApply || fix.Risk == schema.RiskHigh:
				manualAll = append(manualAll, sf)
			case sf.severity == schema.SeverityCritical:
				autoCritical = append(autoCritical, sf)
			default:
				autoRest = append(autoRest, sf)
			}
		}
	}
	return append(autoCritical, autoRest...), manualAll
}

// fixSeverity resolves a fix back to its issue's severity through the
// loose IssueID reference. Unmatched fixes default to WARNING.
func fixSeverity(result schema.TestResult, fix schema.Fix) schema.Severity {
	for _, issue := range result.Issues {
		if fix.IssueID == issue.Category+":"+issue.FilePath ||
			fix.IssueID == issue.Category+":"+string(issue.Type) {
			return issue.Severity
		}
	}
	return schema.SeverityWarning
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
