package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/migcheck/migcheck/checkers"
	"github.com/migcheck/migcheck/internal/contract"
	"github.com/migcheck/migcheck/schema"
)

// MigrationTester is the orchestrator: an ordered checker registry plus
// the aggregation logic that turns individual results into a TestReport.
type MigrationTester struct {
	projectName string
	registry    []contract.Checker
}

// NewMigrationTester creates an empty orchestrator for the named project.
func NewMigrationTester(projectName string) *MigrationTester {
	return &MigrationTester{projectName: projectName}
}

// Register appends a checker. Registration order is preserved and is
// part of the report's observable behavior.
func (t *MigrationTester) Register(c contract.Checker) {
	t.registry = append(t.registry, c)
}

// Checkers returns the registered checker names in order.
func (t *MigrationTester) Checkers() []string {
	names := make([]string, 0, len(t.registry))
	for _, c := range t.registry {
		names = append(names, c.Name())
	}
	return names
}

// RunAllChecks executes every registered checker sequentially and
// aggregates the results. A single checker's internal failure never
// aborts the run: its result becomes SKIP and the rest proceed.
func (t *MigrationTester) RunAllChecks(ctx context.Context) *schema.TestReport {
	results := make([]schema.TestResult, 0, len(t.registry))
	for _, checker := range t.registry {
		results = append(results, runChecker(ctx, checker))
	}

	return &schema.TestReport{
		ProjectName: t.projectName,
		TestDate:    time.Now(),
		Results:     results,
		Summary:     schema.BuildSummary(results),
		ActionItems: BuildActionItems(results),
	}
}

// runChecker invokes one checker, converting panics and errors into a
// SKIP result that references the failure.
func runChecker(ctx context.Context, checker contract.Checker) (result schema.TestResult) {
	defer func() {
		if r := recover(); r != nil {
			result = skipResult(checker.Name(), fmt.Sprintf("checker panicked: %v", r))
		}
	}()

	result, err := checker.Check(ctx)
	if err != nil {
		return skipResult(checker.Name(), fmt.Sprintf("checker could not run: %v", err))
	}
	return result
}

func skipResult(name, message string) schema.TestResult {
	return schema.TestResult{
		CheckerName: name,
		Status:      schema.StatusSkip,
		Message:     message,
		Timestamp:   time.Now(),
	}
}

// BuildActionItems groups all fixes across results by category and
// orders the groups so that auto-applicable, low-risk fixes addressing
// critical findings come first.
func BuildActionItems(results []schema.TestResult) []schema.ActionItem {
	var items []schema.ActionItem
	for _, result := range results {
		if len(result.Fixes) == 0 {
			continue
		}

		hasCritical := false
		for _, issue := range result.Issues {
			if issue.Severity == schema.SeverityCritical {
				hasCritical = true
				break
			}
		}
		autoApplicable := true
		commands := make([]string, 0, len(result.Fixes))
		for _, fix := range result.Fixes {
			commands = append(commands, fix.Command)
			if !fix.AutoApply || fix.Risk == schema.RiskHigh {
				autoApplicable = false
			}
		}

		priority := 3
		switch {
		case autoApplicable && hasCritical:
			priority = 1
		case autoApplicable:
			priority = 2
		}

		verb := "Review"
		if autoApplicable {
			verb = "Apply"
		}
		items = append(items, schema.ActionItem{
			Priority:    priority,
			Description: fmt.Sprintf("%s %d %s fix(es)", verb, len(result.Fixes), result.CheckerName),
			Commands:    commands,
			Category:    result.CheckerName,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority < items[j].Priority
	})
	return items
}

// BuildCheckers constructs the configured checkers in registration
// order, feeding each the pre-discovered file group it needs.
func BuildCheckers(cfg *contract.Config, groups *FileGroups, runner contract.ToolRunner) []contract.Checker {
	// Path scanning covers shell scripts too, not just language sources.
	pathTargets := unionPaths(groups.Sources, groups.Scripts)

	built := make([]contract.Checker, 0, len(cfg.Checkers))
	for _, name := range cfg.Checkers {
		switch name {
		case schema.CategoryLineEndings:
			built = append(built, checkers.NewLineEndingsChecker(cfg.ProjectRoot, groups.TextFiles()))
		case schema.CategoryPermissions:
			built = append(built, checkers.NewPermissionsChecker(cfg.ProjectRoot, groups.Scripts))
		case schema.CategoryPath:
			built = append(built, checkers.NewPathChecker(cfg.ProjectRoot, pathTargets))
		case schema.CategoryDependency:
			built = append(built, checkers.NewDependencyChecker(cfg.ProjectRoot, runner, checkers.DependencyOptions{
				Full:           cfg.FullMode,
				ToolTimeout:    cfg.ToolTimeout,
				InstallTimeout: cfg.InstallTimeout,
			}))
		case schema.CategoryConnectivity:
			built = append(built, checkers.NewConnectivityChecker(runner, checkers.CloudOptions{
				Full:         cfg.FullMode,
				ToolTimeout:  cfg.ToolTimeout,
				ProbeTimeout: cfg.ProbeTimeout,
			}))
		}
	}
	return built
}

func unionPaths(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, group := range [][]string{a, b} {
		for _, path := range group {
			if !seen[path] {
				seen[path] = true
				out = append(out, path)
			}
		}
	}
	return out
}
