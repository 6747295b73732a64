//go:build integration

// Package integration contains integration tests for migcheck.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckFixCheckCycle verifies the full remediation loop: a broken
// project fails the check, the generated script repairs it, and the
// same check passes afterwards.
func TestCheckFixCheckCycle(t *testing.T) {
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}

	root := t.TempDir()
	script := filepath.Join(root, "deploy.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\r\necho deploy\r\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("a\r\nb\r\n"), 0o644))

	// Broken project must fail with a non-zero exit code
	err := runMigcheckCommand(t, "..", "check", "--checkers", "line-endings,permissions", root)
	require.Error(t, err, "CRLF script must fail the check")

	// Generate and apply the remediation script
	fixScript := filepath.Join(t.TempDir(), "fixes.sh")
	require.NoError(t, runMigcheckCommand(t, "..", "fix",
		"--checkers", "line-endings,permissions", "--fix-script", fixScript, root))

	out, err := exec.Command("bash", fixScript).CombinedOutput()
	require.NoError(t, err, string(out))

	// Repaired project must pass
	require.NoError(t, runMigcheckCommand(t, "..", "check",
		"--checkers", "line-endings,permissions", root))

	// And the repair must be real: LF content, executable script
	content, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/bash\necho deploy\n", string(content))
	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100)
}

// TestHistoryExportParquet verifies the SQLite record-then-export flow.
func TestHistoryExportParquet(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.py"),
		[]byte("import os\n"), 0o644))

	dbPath := filepath.Join(t.TempDir(), "history.db")
	t.Setenv("MIGCHECK_HISTORY_BACKEND", "sqlite")
	t.Setenv("MIGCHECK_HISTORY_DB_CONNECT", dbPath)

	require.NoError(t, runMigcheckCommand(t, "..", "check", "--checkers", "path", root))

	outFile := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, runMigcheckCommand(t, "..", "history", "export", "--output-file", outFile))

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, "PAR1", string(data[len(data)-4:]))
}
