package cmd

import (
	"github.com/spf13/cobra"

	"github.com/migcheck/migcheck/core"
	"github.com/migcheck/migcheck/internal/contract"
)

// fixCmd generates the remediation script without the full report.
var fixCmd = &cobra.Command{
	Use:   "fix [project-root]",
	Short: "Generate an idempotent remediation script for detected issues",
	Long: `Run the diagnostics and write a shell script that fixes what can be fixed
automatically: CRLF conversion and execute-bit restoration. Issues that
need human judgment (path rewrites, dependency installs) appear in the
script as commented follow-ups.

The script is safe to run repeatedly; every command checks before it
changes anything.

Examples:
  # Write migcheck_fixes.sh for the current directory
  migcheck fix

  # Choose the script location
  migcheck fix --fix-script /tmp/portability_fixes.sh ~/proj`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMigrationFix(rootCtx, cfg); err != nil {
			contract.LogFatal("Fix generation failed", err)
		}
	},
}
