package checkers

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/migcheck/migcheck/internal/contract"
	"github.com/migcheck/migcheck/schema"
)

// Path issue types reported per match.
const (
	PatternDriveLetter     = "DRIVE_LETTER"
	PatternBackslash       = "BACKSLASH"
	PatternWindowsExe      = "WINDOWS_EXE"
	PatternPathConcat      = "PATH_CONCAT"
	PatternOSSep           = "OS_SEP"
	PatternSubprocessShell = "SUBPROCESS_SHELL"
)

const maxLineContent = 120

// PathIssue is the native record for one non-portable path construct.
type PathIssue struct {
	FilePath     string // relative to the project root
	LineNumber   int
	LineContent  string // truncated for readability
	IssueType    string
	PatternFound string
	Suggestion   string
	Severity     schema.Severity
}

// PathResult is the native result of a path pattern check.
type PathResult struct {
	FilesChecked int
	Unreadable   []string
	Issues       []PathIssue

	// Grouped views for summary reporting.
	IssuesByType    map[string]int
	IssuesByFile    map[string]int
	FilesWithIssues []string
}

// pathPattern couples a compiled regex with the diagnosis it produces.
type pathPattern struct {
	issueType  string
	re         *regexp.Regexp
	severity   schema.Severity
	suggestion string
}

var pathPatterns = []pathPattern{
	{
		issueType:  PatternDriveLetter,
		re:         regexp.MustCompile(`["']([A-Za-z]:[\\/])`),
		severity:   schema.SeverityCritical,
		suggestion: "Use a path-join utility or relative paths instead of drive-letter references",
	},
	{
		issueType:  PatternBackslash,
		re:         regexp.MustCompile(`["']([^"']*\\+[^"'nrtbfv\\][^"']*)`),
		severity:   schema.SeverityWarning,
		suggestion: "Use forward slashes or a path-join utility for cross-platform compatibility",
	},
	{
		issueType:  PatternWindowsExe,
		re:         regexp.MustCompile(`(?i)["']([^"']*\.(?:exe|bat|cmd|ps1))\b`),
		severity:   schema.SeverityCritical,
		suggestion: "Use cross-platform executable names or branch on the runtime platform",
	},
	{
		issueType:  PatternPathConcat,
		re:         regexp.MustCompile(`(\w+)\s*\+\s*["'][/\\]`),
		severity:   schema.SeverityWarning,
		suggestion: "Use a path-join utility instead of string concatenation",
	},
	{
		issueType:  PatternOSSep,
		re:         regexp.MustCompile(`\bos\.sep\b`),
		severity:   schema.SeverityInfo,
		suggestion: "Use a path-join utility instead of the separator constant",
	},
	{
		issueType:  PatternSubprocessShell,
		re:         regexp.MustCompile(`shell\s*=\s*True|\bos\.system\s*\(`),
		severity:   schema.SeverityInfo,
		suggestion: "Pass an argument list without shell interpretation for portability",
	},
}

// pathChecker scans source lines for platform-non-portable constructs.
// It is diagnostic only and never proposes file rewrites.
type pathChecker struct {
	root  string
	files []string
}

// NewPathChecker creates a path checker over the given pre-discovered
// source files.
func NewPathChecker(root string, files []string) contract.Checker {
	return &pathChecker{root: root, files: files}
}

func (c *pathChecker) Name() string { return PathName }

func (c *pathChecker) run() PathResult {
	result := PathResult{
		IssuesByType: map[string]int{},
		IssuesByFile: map[string]int{},
	}

	for _, path := range c.files {
		content, err := os.ReadFile(path)
		if err != nil {
			result.Unreadable = append(result.Unreadable, contract.RelPath(c.root, path))
			continue
		}
		if looksBinary(content) {
			continue
		}
		result.FilesChecked++

		rel := contract.RelPath(c.root, path)
		scanner := bufio.NewScanner(bytes.NewReader(content))
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			for _, issue := range scanPathLine(rel, lineNum, scanner.Text()) {
				result.Issues = append(result.Issues, issue)
				result.IssuesByType[issue.IssueType]++
				result.IssuesByFile[rel]++
			}
		}
	}

	result.FilesWithIssues = make([]string, 0, len(result.IssuesByFile))
	for file := range result.IssuesByFile {
		result.FilesWithIssues = append(result.FilesWithIssues, file)
	}
	sort.Strings(result.FilesWithIssues)
	return result
}

// scanPathLine matches one line against every pattern class. At most one
// issue per class per line keeps noise down on dense lines.
func scanPathLine(relPath string, lineNum int, line string) []PathIssue {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		return nil
	}

	var issues []PathIssue
	for _, p := range pathPatterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		found := m[0]
		if len(m) > 1 && m[1] != "" {
			found = m[1]
		}
		if p.issueType == PatternBackslash && !isLikelyPath(found) {
			continue
		}
		issues = append(issues, PathIssue{
			FilePath:     relPath,
			LineNumber:   lineNum,
			LineContent:  contract.TruncateLine(trimmed, maxLineContent),
			IssueType:    p.issueType,
			PatternFound: found,
			Suggestion:   p.suggestion,
			Severity:     p.severity,
		})
	}
	return issues
}

var extensionRe = regexp.MustCompile(`\.\w{2,4}$`)

// pathIndicators are substrings that mark a backslashed string as a
// probable file path rather than a regex or escape sequence.
var pathIndicators = []string{
	"users", "program", "windows", "system", "temp", "documents",
	"desktop", "downloads", "appdata", "local", "roaming",
	"src", "lib", "bin", "data", "config", "scripts",
}

func isLikelyPath(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range pathIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	if strings.Count(text, `\`) >= 2 {
		return true
	}
	return extensionRe.MatchString(text)
}

// describePathIssue renders the impact text carried into reports.
func describePathIssue(issue PathIssue) string {
	return fmt.Sprintf("%s pattern %q", issue.IssueType, issue.PatternFound)
}
