package outwriter_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/migcheck/migcheck/checkers"
	"github.com/migcheck/migcheck/internal/contract"
	"github.com/migcheck/migcheck/internal/outwriter"
	"github.com/migcheck/migcheck/schema"
)

// buildReport runs the file checkers against root and wraps the results.
func buildReport(t *testing.T, root string, texts, scripts []string) *schema.TestReport {
	t.Helper()
	var results []schema.TestResult
	for _, checker := range []contract.Checker{
		checkers.NewLineEndingsChecker(root, texts),
		checkers.NewPermissionsChecker(root, scripts),
	} {
		result, err := checker.Check(context.Background())
		require.NoError(t, err)
		results = append(results, result)
	}
	return &schema.TestReport{
		ProjectName: "fixture",
		TestDate:    time.Now(),
		Results:     results,
		Summary:     schema.BuildSummary(results),
	}
}

// snapshot captures file contents and permissions for idempotence checks.
func snapshot(t *testing.T, paths []string) map[string]string {
	t.Helper()
	state := map[string]string{}
	for _, path := range paths {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		info, err := os.Stat(path)
		require.NoError(t, err)
		state[path] = info.Mode().String() + "|" + string(content)
	}
	return state
}

func TestFixScriptIdempotence(t *testing.T) {
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
	root := t.TempDir()

	script := filepath.Join(root, "run.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\r\necho hi\r\n"), 0o644))
	notes := filepath.Join(root, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("a\r\nb\r\n"), 0o644))

	texts := []string{script, notes}
	report := buildReport(t, root, texts, []string{script})
	require.Equal(t, schema.StatusFail, schema.WorstStatus(report.Results))

	scriptPath := filepath.Join(t.TempDir(), "fixes.sh")
	require.NoError(t, outwriter.WriteFixScript(report, root, scriptPath))

	info, err := os.Stat(scriptPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100, "fix script must be executable")

	runScript := func() {
		out, err := exec.Command("bash", scriptPath).CombinedOutput()
		require.NoError(t, err, string(out))
	}

	runScript()
	afterFirst := snapshot(t, texts)
	assert.Equal(t, "#!/bin/bash\necho hi\n", afterFirst[script][11:], "CRLF stripped")

	runScript()
	afterSecond := snapshot(t, texts)
	assert.Equal(t, afterFirst, afterSecond, "second application must be a no-op")

	// The defects are gone for real, not just untouched.
	clean := buildReport(t, root, texts, []string{script})
	assert.Equal(t, schema.StatusPass, schema.WorstStatus(clean.Results))
}

func TestBuildFixScriptLayout(t *testing.T) {
	report := &schema.TestReport{
		ProjectName: "demo",
		TestDate:    time.Now(),
		Results: []schema.TestResult{
			{
				CheckerName: schema.CategoryPermissions,
				Status:      schema.StatusWarning,
				Issues: []schema.Issue{
					{Severity: schema.SeverityWarning, Category: schema.CategoryPermissions,
						Type: "MISSING_EXECUTE", FilePath: "b.sh", Description: "script is not executable"},
				},
				Fixes: []schema.Fix{
					{IssueID: "permissions:b.sh", Command: "chmod +x b.sh",
						Description: "Make b.sh executable", AutoApply: true, Risk: schema.RiskLow},
				},
			},
			{
				CheckerName: schema.CategoryLineEndings,
				Status:      schema.StatusFail,
				Issues: []schema.Issue{
					{Severity: schema.SeverityCritical, Category: schema.CategoryLineEndings,
						Type: "CRLF", FilePath: "a.sh", Description: "CRLF line endings"},
				},
				Fixes: []schema.Fix{
					{IssueID: "line-endings:a.sh", Command: "dos2unix a.sh",
						Description: "Convert a.sh to LF line endings", AutoApply: true, Risk: schema.RiskLow},
				},
			},
			{
				CheckerName: schema.CategoryDependency,
				Status:      schema.StatusFail,
				Issues: []schema.Issue{
					{Severity: schema.SeverityCritical, Category: schema.CategoryDependency,
						Type: "IMPORT_ERROR", Description: "cannot import critical package boto3"},
				},
				Fixes: []schema.Fix{
					{IssueID: "dependency:IMPORT_ERROR", Command: "# pip install boto3",
						Description: "Install the package: pip install boto3",
						AutoApply:   false, Risk: schema.RiskMedium},
				},
			},
		},
	}

	content := outwriter.BuildFixScript(report, "/proj")

	assert.True(t, len(content) > 0 && content[:11] == "#!/bin/bash")
	assert.Contains(t, content, "# Issues addressed:")
	assert.Contains(t, content, "[CRITICAL] a.sh: CRLF line endings")
	assert.Contains(t, content, "cd '/proj'")

	// Critical-sourced commands precede warning-sourced ones even though
	// their results arrive in the opposite order.
	critIdx := strings.Index(content, "dos2unix a.sh")
	warnIdx := strings.Index(content, "chmod +x b.sh")
	require.GreaterOrEqual(t, critIdx, 0)
	require.GreaterOrEqual(t, warnIdx, 0)
	assert.Less(t, critIdx, warnIdx)

	assert.Contains(t, content, "# Manual follow-ups")
	assert.Contains(t, content, "pip install boto3")
}
