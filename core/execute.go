package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/migcheck/migcheck/internal/contract"
	"github.com/migcheck/migcheck/internal/outwriter"
	"github.com/migcheck/migcheck/schema"
)

// ErrChecksFailed signals that at least one checker reported FAIL. The
// CLI maps it to a non-zero exit code; warnings alone do not trip it.
var ErrChecksFailed = errors.New("critical portability issues found")

// ExecuteMigrationCheck runs the full diagnostic flow: discover files,
// run the configured checkers, render the report, optionally emit the
// remediation script and record the run in history.
func ExecuteMigrationCheck(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	start := time.Now()

	report, err := RunDiagnostics(ctx, cfg)
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	if err := ow.WriteReport(report, cfg); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}

	if cfg.FixScript != "" {
		if err := outwriter.WriteFixScript(report, cfg.ProjectRoot, cfg.FixScript); err != nil {
			return fmt.Errorf("error writing fix script: %w", err)
		}
		fmt.Printf("Wrote remediation script to %s\n", cfg.FixScript)
	}

	if store != nil {
		if _, err := store.RecordRun(report); err != nil {
			contract.LogWarn("recording run history", err)
		}
	}

	fmt.Printf("Completed %d checks in %v\n", report.Summary.TotalChecks, time.Since(start).Round(time.Millisecond))

	if schema.WorstStatus(report.Results) == schema.StatusFail {
		return ErrChecksFailed
	}
	return nil
}

// ExecuteMigrationFix runs the checkers and emits only the remediation
// script, without rendering the full report.
func ExecuteMigrationFix(ctx context.Context, cfg *contract.Config) error {
	report, err := RunDiagnostics(ctx, cfg)
	if err != nil {
		return err
	}

	path := cfg.FixScript
	if path == "" {
		path = "migcheck_fixes.sh"
	}
	if err := outwriter.WriteFixScript(report, cfg.ProjectRoot, path); err != nil {
		return fmt.Errorf("error writing fix script: %w", err)
	}

	fixes := report.AllFixes()
	fmt.Printf("Wrote %d fix command(s) to %s\n", len(fixes), path)
	fmt.Println("Review the script before running it.")
	return nil
}

// RunDiagnostics discovers target files, wires the configured checkers
// and produces the aggregated report.
func RunDiagnostics(ctx context.Context, cfg *contract.Config) (*schema.TestReport, error) {
	groups, err := DiscoverFiles(cfg.ProjectRoot, cfg.Excludes)
	if err != nil {
		return nil, fmt.Errorf("error discovering files under %s: %w", cfg.ProjectRoot, err)
	}

	tester := NewMigrationTester(cfg.ProjectName)
	runner := contract.NewLocalToolRunner()
	for _, checker := range BuildCheckers(cfg, groups, runner) {
		tester.Register(checker)
	}
	return tester.RunAllChecks(ctx), nil
}
