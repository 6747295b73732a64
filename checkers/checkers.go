// Package checkers implements the concrete migration-readiness checkers.
//
// Each checker produces a native, checker-specific result that is mapped
// into the canonical schema model by the adapters in adapter.go. Native
// fields never leak past that boundary.
package checkers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// Checker names as they appear in reports and the --checkers flag.
const (
	LineEndingsName  = "line-endings"
	PermissionsName  = "permissions"
	PathName         = "path"
	DependencyName   = "dependency"
	ConnectivityName = "connectivity"
)

// shellExtensions mark files intended for execution on a Unix-like shell.
var shellExtensions = map[string]bool{
	".sh":   true,
	".bash": true,
	".zsh":  true,
}

// isShellScript reports whether a file is a shell script, by extension
// or by shebang line. content may be nil, in which case only the name
// is consulted.
func isShellScript(path string, content []byte) bool {
	if shellExtensions[strings.ToLower(filepath.Ext(path))] {
		return true
	}
	return hasShebang(content)
}

// hasShebang reports whether content starts with an interpreter line.
func hasShebang(content []byte) bool {
	return bytes.HasPrefix(content, []byte("#!"))
}

// looksBinary sniffs the leading bytes for NUL, the usual heuristic for
// content that should not be line-scanned.
func looksBinary(content []byte) bool {
	const sniffLen = 8000
	head := content
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	return bytes.IndexByte(head, 0) >= 0
}

// LooksLikeShellScript reports whether a file on disk is a shell script,
// deciding by extension first and falling back to a shebang sniff. Used
// by discovery to classify files before checkers run.
func LooksLikeShellScript(path string) bool {
	if shellExtensions[strings.ToLower(filepath.Ext(path))] {
		return true
	}
	head := readShebang(path)
	if !hasShebang(head) {
		return false
	}
	line := string(head)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.Contains(line, "sh") && !strings.Contains(line, "python")
}

// readShebang returns the first bytes of a file for shebang detection,
// or nil if the file cannot be read.
func readShebang(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()
	buf := make([]byte, 64)
	n, _ := f.Read(buf)
	return buf[:n]
}

// shq single-quotes a path for safe interpolation into a shell command.
func shq(path string) string {
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}
