package checkers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/migcheck/migcheck/schema"
)

// This file is the adapter boundary: each checker's Check method runs the
// native scan and maps its result field-for-field into the canonical
// model. Native fields with no canonical slot fold into Impact text.

func (c *lineEndingsChecker) Check(ctx context.Context) (schema.TestResult, error) {
	if err := ctx.Err(); err != nil {
		return schema.TestResult{}, err
	}
	return adaptLineEndings(c.run()), nil
}

func adaptLineEndings(native LineEndingsResult) schema.TestResult {
	result := schema.TestResult{
		CheckerName: LineEndingsName,
		Timestamp:   time.Now(),
	}
	for _, info := range native.Issues {
		result.Issues = append(result.Issues, schema.Issue{
			Severity: info.Severity,
			Category: schema.CategoryLineEndings,
			Type:     schema.IssueType(info.Kind),
			FilePath: info.FilePath,
			Description: fmt.Sprintf("%s line endings (%d of %d lines CRLF)",
				info.Kind, info.CRLFCount, info.TotalLines),
			Impact:     lineEndingImpact(info),
			Suggestion: "Convert to LF line endings",
		})
		result.Fixes = append(result.Fixes, schema.Fix{
			IssueID:     issueID(schema.CategoryLineEndings, info.FilePath),
			Command:     info.FixCommand,
			Description: "Convert " + info.FilePath + " to LF line endings",
			AutoApply:   true,
			Risk:        schema.RiskLow,
		})
	}
	appendUnreadable(&result, schema.CategoryLineEndings, native.Unreadable)
	result.Status = schema.DeriveStatus(result.Issues)
	result.Message = scanMessage(result.Status, native.FilesChecked, len(native.Issues), "line-ending")
	return result
}

func lineEndingImpact(info LineEndingInfo) string {
	if info.Severity == schema.SeverityCritical {
		return "A carriage return after the shebang breaks interpreter resolution on Unix"
	}
	return "Windows line endings cause diffs, tool failures and broken parsing on Unix"
}

func (c *permissionsChecker) Check(ctx context.Context) (schema.TestResult, error) {
	if err := ctx.Err(); err != nil {
		return schema.TestResult{}, err
	}
	return adaptPermissions(c.run()), nil
}

func adaptPermissions(native PermissionsResult) schema.TestResult {
	result := schema.TestResult{
		CheckerName: PermissionsName,
		Timestamp:   time.Now(),
	}
	for _, info := range native.Issues {
		result.Issues = append(result.Issues, schema.Issue{
			Severity:    schema.SeverityWarning,
			Category:    schema.CategoryPermissions,
			Type:        "MISSING_EXECUTE",
			FilePath:    info.FilePath,
			Description: fmt.Sprintf("script is not executable (mode %s, expected %s)", info.CurrentMode, info.ExpectedMode),
			Impact:      "The script cannot be invoked directly after checkout on Unix",
			Suggestion:  "chmod +x " + info.FilePath,
		})
		result.Fixes = append(result.Fixes, schema.Fix{
			IssueID:     issueID(schema.CategoryPermissions, info.FilePath),
			Command:     info.FixCommand,
			Description: "Make " + info.FilePath + " executable",
			AutoApply:   true,
			Risk:        schema.RiskLow,
		})
	}
	appendUnreadable(&result, schema.CategoryPermissions, native.Unreadable)
	result.Status = schema.DeriveStatus(result.Issues)
	result.Message = scanMessage(result.Status, native.FilesChecked, len(native.Issues), "permission")
	return result
}

func (c *pathChecker) Check(ctx context.Context) (schema.TestResult, error) {
	if err := ctx.Err(); err != nil {
		return schema.TestResult{}, err
	}
	return adaptPath(c.run()), nil
}

// adaptPath maps path issues without emitting fixes: path rewrites risk
// behavior changes that are never safe to apply blindly.
func adaptPath(native PathResult) schema.TestResult {
	result := schema.TestResult{
		CheckerName: PathName,
		Timestamp:   time.Now(),
	}
	for _, issue := range native.Issues {
		result.Issues = append(result.Issues, schema.Issue{
			Severity:    issue.Severity,
			Category:    schema.CategoryPath,
			Type:        schema.IssueType(issue.IssueType),
			FilePath:    issue.FilePath,
			LineNumber:  issue.LineNumber,
			Description: describePathIssue(issue),
			Impact:      "line: " + issue.LineContent,
			Suggestion:  issue.Suggestion,
		})
	}
	appendUnreadable(&result, schema.CategoryPath, native.Unreadable)
	result.Status = schema.DeriveStatus(result.Issues)
	if len(native.Issues) == 0 {
		result.Message = fmt.Sprintf("no non-portable path patterns in %d files", native.FilesChecked)
	} else {
		result.Message = fmt.Sprintf("%d non-portable path patterns across %d files (%s)",
			len(native.Issues), len(native.FilesWithIssues), summarizeByType(native.IssuesByType))
	}
	return result
}

// summarizeByType renders per-type counts in a stable order.
func summarizeByType(byType map[string]int) string {
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s:%d", t, byType[t]))
	}
	return strings.Join(parts, " ")
}

func (c *dependencyChecker) Check(ctx context.Context) (schema.TestResult, error) {
	if err := ctx.Err(); err != nil {
		return schema.TestResult{}, err
	}
	return adaptDependency(c.run(ctx), c.opts.Full), nil
}

func adaptDependency(native DependencyResult, full bool) schema.TestResult {
	result := schema.TestResult{
		CheckerName: DependencyName,
		Timestamp:   time.Now(),
	}
	for _, issue := range native.Issues {
		result.Issues = append(result.Issues, schema.Issue{
			Severity:    issue.Severity,
			Category:    schema.CategoryDependency,
			Type:        schema.IssueType(issue.IssueType),
			Description: issue.Description,
			Impact:      issue.Details,
			Suggestion:  issue.FixSuggestion,
		})
		if issue.FixSuggestion != "" {
			result.Fixes = append(result.Fixes, schema.Fix{
				IssueID:     issueID(schema.CategoryDependency, issue.IssueType),
				Command:     "# " + issue.FixSuggestion,
				Description: issue.FixSuggestion,
				AutoApply:   false,
				Risk:        schema.RiskMedium,
			})
		}
	}
	result.Status = schema.DeriveStatus(result.Issues)
	result.Message = dependencyMessage(native, result.Status, full)
	return result
}

func dependencyMessage(native DependencyResult, status schema.Status, full bool) string {
	if status == schema.StatusPass {
		mode := "quick check"
		if full {
			mode = fmt.Sprintf("%d packages installed into a clean venv", native.PackagesInstalled)
		}
		return fmt.Sprintf("Python %s with all critical packages available (%s)", native.PythonVersion, mode)
	}
	if native.PythonVersion == "" {
		return "no usable Python interpreter"
	}
	return fmt.Sprintf("Python %s environment has %d issue(s)", native.PythonVersion, len(native.Issues))
}

func (c *connectivityChecker) Check(ctx context.Context) (schema.TestResult, error) {
	if err := ctx.Err(); err != nil {
		return schema.TestResult{}, err
	}
	return adaptCloud(c.run(ctx), c.opts.Full), nil
}

func adaptCloud(native CloudResult, full bool) schema.TestResult {
	result := schema.TestResult{
		CheckerName: ConnectivityName,
		Timestamp:   time.Now(),
	}
	for _, issue := range native.Issues {
		result.Issues = append(result.Issues, schema.Issue{
			Severity:    issue.Severity,
			Category:    schema.CategoryConnectivity,
			Type:        schema.IssueType(issue.IssueType),
			Description: issue.Description,
			Impact:      issue.Details,
			Suggestion:  issue.FixSuggestion,
		})
		if issue.FixSuggestion != "" {
			result.Fixes = append(result.Fixes, schema.Fix{
				IssueID:     issueID(schema.CategoryConnectivity, issue.IssueType),
				Command:     "# " + issue.FixSuggestion,
				Description: issue.FixSuggestion,
				AutoApply:   false,
				Risk:        schema.RiskMedium,
			})
		}
	}
	result.Status = schema.DeriveStatus(result.Issues)
	result.Message = cloudMessage(native, result.Status, full)
	return result
}

func cloudMessage(native CloudResult, status schema.Status, full bool) string {
	switch {
	case status == schema.StatusPass && full:
		return fmt.Sprintf("AWS CLI %s configured, all service probes passed in %s", native.CLIVersion, native.Region)
	case status == schema.StatusPass:
		return fmt.Sprintf("AWS CLI %s installed, credentials resolvable in %s (quick check)", native.CLIVersion, native.Region)
	case !native.CredentialsOK:
		return "cloud credentials not configured"
	default:
		return fmt.Sprintf("cloud connectivity has %d issue(s)", len(native.Issues))
	}
}

// appendUnreadable folds unreadable-file paths into WARNING issues so
// a checker that skipped files never reports a clean PASS.
func appendUnreadable(result *schema.TestResult, category string, unreadable []string) {
	for _, path := range unreadable {
		result.Issues = append(result.Issues, schema.Issue{
			Severity:    schema.SeverityWarning,
			Category:    category,
			Type:        "UNREADABLE",
			FilePath:    path,
			Description: "file could not be read and was skipped",
			Impact:      "the scan result may be incomplete",
		})
	}
}

// issueID builds the loose issue reference carried by fixes.
func issueID(category, key string) string {
	return category + ":" + key
}

func scanMessage(status schema.Status, filesChecked, issueCount int, noun string) string {
	if status == schema.StatusPass {
		return fmt.Sprintf("no %s issues in %d files", noun, filesChecked)
	}
	return fmt.Sprintf("%d %s issue(s) in %d files", issueCount, noun, filesChecked)
}
