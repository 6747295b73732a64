package checkers

import (
	"bytes"
	"fmt"
	"os"

	"github.com/migcheck/migcheck/internal/contract"
	"github.com/migcheck/migcheck/schema"
)

// Line-ending kinds reported per file.
const (
	endingCRLF  = "CRLF"
	endingMixed = "MIXED"
	endingCR    = "CR"
)

// LineEndingInfo is the native record for one file with Windows or
// old-Mac line endings.
type LineEndingInfo struct {
	FilePath   string // relative to the project root
	Kind       string // CRLF, MIXED or CR
	TotalLines int
	CRLFCount  int
	FixCommand string
	Severity   schema.Severity
}

// LineEndingsResult is the native result of a line-endings check.
type LineEndingsResult struct {
	FilesChecked int
	Unreadable   []string
	Issues       []LineEndingInfo
}

// lineEndingsChecker scans text files for CRLF (and bare CR) line
// endings. Shell scripts with any CRLF are critical: a carriage return
// after the shebang silently breaks interpreter resolution.
type lineEndingsChecker struct {
	root  string
	files []string
}

// NewLineEndingsChecker creates a line-endings checker over the given
// pre-discovered text files.
func NewLineEndingsChecker(root string, files []string) contract.Checker {
	return &lineEndingsChecker{root: root, files: files}
}

func (c *lineEndingsChecker) Name() string { return LineEndingsName }

// run performs the native check. Results are accumulated locally so
// repeated calls start fresh.
func (c *lineEndingsChecker) run() LineEndingsResult {
	var result LineEndingsResult

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

		info, flagged := inspectLineEndings(content)
		if !flagged {
			continue
		}
		rel := contract.RelPath(c.root, path)
		info.FilePath = rel
		if info.Kind == endingCR {
			info.FixCommand = crToLFCommand(rel)
		} else {
			info.FixCommand = stripCRCommand(rel)
		}
		if isShellScript(path, content) {
			info.Severity = schema.SeverityCritical
		} else {
			info.Severity = schema.SeverityWarning
		}
		result.Issues = append(result.Issues, info)
	}
	return result
}

// inspectLineEndings counts terminator styles in content and reports
// whether the file needs conversion.
func inspectLineEndings(content []byte) (LineEndingInfo, bool) {
	crlf := bytes.Count(content, []byte("\r\n"))
	lf := bytes.Count(content, []byte("\n")) - crlf
	cr := bytes.Count(content, []byte("\r")) - crlf

	info := LineEndingInfo{
		TotalLines: crlf + lf + cr,
		CRLFCount:  crlf,
	}

	switch {
	case crlf > 0 && lf > 0:
		info.Kind = endingMixed
	case crlf > 0:
		info.Kind = endingCRLF
	case lf > 0:
		return info, false // pure LF, nothing to do
	case cr > 0:
		info.Kind = endingCR // old Mac style, also needs fixing
	default:
		return info, false // no line terminators at all
	}
	return info, true
}

// stripCRCommand builds the idempotent per-file conversion command.
// The grep guard makes re-running a no-op on already-converted files;
// sed -i.bak with a bash $'\r' literal works on both GNU and BSD sed.
func stripCRCommand(relPath string) string {
	q := shq(relPath)
	return fmt.Sprintf(
		"if grep -q $'\\r' %s; then dos2unix %s 2>/dev/null || { sed -i.bak $'s/\\r$//' %s && rm -f %s; }; fi",
		q, q, q, shq(relPath+".bak"))
}

// crToLFCommand builds the conversion command for old-Mac files. Bare
// CRs terminate lines there, so a trailing-CR strip would leave the
// whole file on one line; each CR becomes an LF instead.
func crToLFCommand(relPath string) string {
	q := shq(relPath)
	tmp := shq(relPath + ".tmp")
	return fmt.Sprintf(
		"if grep -q $'\\r' %s; then tr '\\r' '\\n' < %s > %s && mv %s %s; fi",
		q, q, tmp, tmp, q)
}
