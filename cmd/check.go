package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/migcheck/migcheck/core"
	"github.com/migcheck/migcheck/internal/contract"
)

// checkCmd runs the full diagnostic suite.
var checkCmd = &cobra.Command{
	Use:   "check [project-root]",
	Short: "Run portability diagnostics and report migration readiness",
	Long: `Inspect a project for defects that break cross-platform moves and print a
structured readiness report.

Runs five checkers by default:
- line-endings  - CRLF content in scripts, sources and configs
- permissions   - scripts missing the execute bit
- path          - hard-coded Windows path idioms in source code
- dependency    - Python runtime and package health
- connectivity  - AWS CLI, credentials and service reachability

Exit code is non-zero when any checker reports FAIL, so the command can
gate CI pipelines and pre-migration checklists.

Examples:
  # Check the current directory with every checker
  migcheck check

  # Fast file checks only
  migcheck check --checkers line-endings,permissions,path ~/proj

  # Deep mode: venv install plus live cloud probes, markdown report
  migcheck check --full --output markdown --output-file report.md

  # Emit a remediation script alongside the report
  migcheck check --fix-script fixes.sh`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMigrationCheck(rootCtx, cfg, historyStore); err != nil {
			closeHistoryStore()
			if errors.Is(err, core.ErrChecksFailed) {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			contract.LogFatal("Migration check failed", err)
		}
	},
}
