package checkers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/migcheck/migcheck/internal/contract"
	"github.com/migcheck/migcheck/schema"
)

// Dependency issue types.
const (
	DepPythonVersion       = "PYTHON_VERSION"
	DepMissingRequirements = "MISSING_REQUIREMENTS"
	DepVenvCreation        = "VENV_CREATION"
	DepPackageInstall      = "PACKAGE_INSTALL"
	DepImportError         = "IMPORT_ERROR"
)

// CriticalPackages must be importable regardless of manifest contents.
var CriticalPackages = []string{"boto3", "streamlit", "bedrock_agentcore"}

// Interpreter version bounds. Below minimum is critical, below
// recommended is a warning.
var (
	minPythonVersion         = [3]int{3, 9, 0}
	recommendedPythonVersion = [3]int{3, 12, 12}
)

// requirementsCandidates are the manifest names probed in order.
var requirementsCandidates = []string{"requirements.txt", "dev-requirements.txt"}

// DependencyIssue is the native record for one environment defect.
type DependencyIssue struct {
	IssueType     string
	Description   string
	Details       string
	Severity      schema.Severity
	FixSuggestion string
}

// DependencyResult is the native result of a dependency check.
type DependencyResult struct {
	PythonVersion     string
	RequirementsFile  string
	VenvCreated       bool
	PackagesInstalled int
	PackagesFailed    int
	ImportsSuccessful []string
	ImportsFailed     []string
	Issues            []DependencyIssue
}

// DependencyOptions tunes the dependency checker. Zero timeouts fall
// back to the contract defaults.
type DependencyOptions struct {
	Full           bool
	ToolTimeout    time.Duration
	VenvTimeout    time.Duration
	InstallTimeout time.Duration
}

// dependencyChecker validates the runtime environment. Quick mode checks
// the interpreter version and critical imports against the current
// environment; full mode additionally builds a throwaway virtualenv and
// installs the requirements manifest into it.
type dependencyChecker struct {
	root   string
	runner contract.ToolRunner
	opts   DependencyOptions
}

// NewDependencyChecker creates a dependency checker over the project root.
func NewDependencyChecker(root string, runner contract.ToolRunner, opts DependencyOptions) contract.Checker {
	if opts.ToolTimeout <= 0 {
		opts.ToolTimeout = contract.DefaultToolTimeout
	}
	if opts.VenvTimeout <= 0 {
		opts.VenvTimeout = contract.DefaultVenvTimeout
	}
	if opts.InstallTimeout <= 0 {
		opts.InstallTimeout = contract.DefaultInstallTimeout
	}
	return &dependencyChecker{root: root, runner: runner, opts: opts}
}

func (c *dependencyChecker) Name() string { return DependencyName }

func (c *dependencyChecker) run(ctx context.Context) DependencyResult {
	var result DependencyResult

	version, ok := c.checkPythonVersion(ctx, &result)
	result.PythonVersion = version
	if !ok {
		return result
	}

	c.checkCriticalImports(ctx, &result)

	reqs := c.findRequirements()
	if reqs == "" {
		result.Issues = append(result.Issues, DependencyIssue{
			IssueType:     DepMissingRequirements,
			Description:   "no requirements manifest found",
			Details:       fmt.Sprintf("looked for %s under %s", strings.Join(requirementsCandidates, ", "), c.root),
			Severity:      schema.SeverityCritical,
			FixSuggestion: "Add a requirements.txt listing the project dependencies",
		})
		return result
	}
	result.RequirementsFile = reqs

	if !c.opts.Full {
		return result
	}
	c.checkInstall(ctx, reqs, &result)
	return result
}

// checkPythonVersion resolves the interpreter version and compares it
// against the minimum and recommended bounds. Returns false when the
// interpreter is unusable and further checks are pointless.
func (c *dependencyChecker) checkPythonVersion(ctx context.Context, result *DependencyResult) (string, bool) {
	stdout, stderr, err := c.runner.Run(ctx, c.opts.ToolTimeout, "python3", "--version")
	if err != nil {
		result.Issues = append(result.Issues, DependencyIssue{
			IssueType:     DepPythonVersion,
			Description:   "python3 interpreter not available",
			Details:       firstNonEmpty(strings.TrimSpace(string(stderr)), err.Error()),
			Severity:      schema.SeverityCritical,
			FixSuggestion: "Install Python via a package manager (e.g. brew install python@3.12)",
		})
		return "", false
	}

	// Some interpreters print the version banner on stderr.
	version := parsePythonVersion(string(stdout) + string(stderr))
	if version == "" {
		result.Issues = append(result.Issues, DependencyIssue{
			IssueType:     DepPythonVersion,
			Description:   "cannot parse python3 version output",
			Details:       strings.TrimSpace(string(stdout) + string(stderr)),
			Severity:      schema.SeverityCritical,
			FixSuggestion: "Reinstall Python so python3 --version reports a standard banner",
		})
		return "", false
	}

	parsed := splitVersion(version)
	if compareVersion(parsed, minPythonVersion) < 0 {
		result.Issues = append(result.Issues, DependencyIssue{
			IssueType:     DepPythonVersion,
			Description:   fmt.Sprintf("Python %s is below the minimum %s", version, joinVersion(minPythonVersion)),
			Details:       fmt.Sprintf("minimum required: %s, found: %s", joinVersion(minPythonVersion), version),
			Severity:      schema.SeverityCritical,
			FixSuggestion: fmt.Sprintf("Install Python %s or newer", joinVersion(recommendedPythonVersion)),
		})
		return version, false
	}
	if compareVersion(parsed, recommendedPythonVersion) < 0 {
		result.Issues = append(result.Issues, DependencyIssue{
			IssueType:     DepPythonVersion,
			Description:   fmt.Sprintf("Python %s is below the recommended %s", version, joinVersion(recommendedPythonVersion)),
			Details:       fmt.Sprintf("recommended: %s, found: %s", joinVersion(recommendedPythonVersion), version),
			Severity:      schema.SeverityWarning,
			FixSuggestion: fmt.Sprintf("Consider upgrading to Python %s", joinVersion(recommendedPythonVersion)),
		})
	}
	return version, true
}

// checkCriticalImports verifies each critical package loads in the
// current environment. No installation is attempted here.
func (c *dependencyChecker) checkCriticalImports(ctx context.Context, result *DependencyResult) {
	for _, pkg := range CriticalPackages {
		_, stderr, err := c.runner.Run(ctx, c.opts.ToolTimeout, "python3", "-c", "import "+pkg)
		if err == nil {
			result.ImportsSuccessful = append(result.ImportsSuccessful, pkg)
			continue
		}
		result.ImportsFailed = append(result.ImportsFailed, pkg)
		result.Issues = append(result.Issues, DependencyIssue{
			IssueType:     DepImportError,
			Description:   "cannot import critical package " + pkg,
			Details:       firstNonEmpty(strings.TrimSpace(string(stderr)), err.Error()),
			Severity:      schema.SeverityCritical,
			FixSuggestion: "Install the package: pip install " + pkg,
		})
	}
}

// checkInstall builds a throwaway venv and installs the manifest into it,
// turning each identifiable pip failure into its own issue.
func (c *dependencyChecker) checkInstall(ctx context.Context, reqs string, result *DependencyResult) {
	tmpDir, err := os.MkdirTemp("", "migcheck-venv-")
	if err != nil {
		result.Issues = append(result.Issues, DependencyIssue{
			IssueType:     DepVenvCreation,
			Description:   "cannot create temporary directory for venv test",
			Details:       err.Error(),
			Severity:      schema.SeverityCritical,
			FixSuggestion: "Free disk space and check TMPDIR permissions",
		})
		return
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	venvPath := filepath.Join(tmpDir, "venv")
	_, stderr, err := c.runner.Run(ctx, c.opts.VenvTimeout, "python3", "-m", "venv", venvPath)
	if err != nil {
		result.Issues = append(result.Issues, DependencyIssue{
			IssueType:     DepVenvCreation,
			Description:   "failed to create virtual environment",
			Details:       firstNonEmpty(strings.TrimSpace(string(stderr)), err.Error()),
			Severity:      schema.SeverityCritical,
			FixSuggestion: "Ensure the venv module is available: python3 -m ensurepip",
		})
		return
	}
	result.VenvCreated = true

	pip := filepath.Join(venvPath, "bin", "pip")
	// Best effort; an old pip still installs most manifests.
	_, _, _ = c.runner.Run(ctx, c.opts.VenvTimeout, pip, "install", "--upgrade", "pip")

	_, stderr, err = c.runner.Run(ctx, c.opts.InstallTimeout, pip, "install", "-r", reqs)
	if err != nil {
		failures := ParsePipFailures(string(stderr))
		result.PackagesFailed = len(failures)
		for _, f := range failures {
			result.Issues = append(result.Issues, DependencyIssue{
				IssueType:     DepPackageInstall,
				Description:   "failed to install package " + f.Package,
				Details:       f.Context,
				Severity:      schema.SeverityCritical,
				FixSuggestion: "Check package availability and compatibility: pip install " + f.Package,
			})
		}
		return
	}

	stdout, _, err := c.runner.Run(ctx, c.opts.VenvTimeout, pip, "list", "--format=freeze")
	if err == nil {
		for line := range strings.SplitSeq(string(stdout), "\n") {
			if strings.TrimSpace(line) != "" {
				result.PackagesInstalled++
			}
		}
	}
}

// findRequirements returns the absolute path of the first manifest
// candidate present under the project root, or "".
func (c *dependencyChecker) findRequirements() string {
	for _, name := range requirementsCandidates {
		path := filepath.Join(c.root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// PipFailure names one package pip could not install, with surrounding
// error context.
type PipFailure struct {
	Package string
	Context string
}

var pipFailureRes = []*regexp.Regexp{
	regexp.MustCompile(`ERROR: Could not find a version that satisfies the requirement (\S+)`),
	regexp.MustCompile(`ERROR: No matching distribution found for (\S+)`),
	regexp.MustCompile(`ERROR: Failed building wheel for (\S+)`),
}

// ParsePipFailures extracts the specific packages that failed from pip's
// error output. When the output signals an error but names no package, a
// single "unknown" failure carries the head of the output.
func ParsePipFailures(errOutput string) []PipFailure {
	var failures []PipFailure
	seen := map[string]bool{}

	for _, re := range pipFailureRes {
		for _, m := range re.FindAllStringSubmatchIndex(errOutput, -1) {
			pkg := errOutput[m[2]:m[3]]
			if seen[pkg] {
				continue
			}
			seen[pkg] = true
			start := max(m[0]-200, 0)
			end := min(m[1]+200, len(errOutput))
			failures = append(failures, PipFailure{
				Package: pkg,
				Context: strings.TrimSpace(errOutput[start:end]),
			})
		}
	}

	if len(failures) == 0 && strings.Contains(errOutput, "ERROR") {
		failures = append(failures, PipFailure{
			Package: "unknown",
			Context: contract.TruncateLine(strings.TrimSpace(errOutput), 500),
		})
	}
	return failures
}

var pythonVersionRe = regexp.MustCompile(`Python (\d+\.\d+\.\d+)`)

func parsePythonVersion(banner string) string {
	m := pythonVersionRe.FindStringSubmatch(banner)
	if m == nil {
		return ""
	}
	return m[1]
}

func splitVersion(version string) [3]int {
	var out [3]int
	for i, part := range strings.SplitN(version, ".", 3) {
		if i > 2 {
			break
		}
		n, _ := strconv.Atoi(part)
		out[i] = n
	}
	return out
}

func compareVersion(a, b [3]int) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func joinVersion(v [3]int) string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
