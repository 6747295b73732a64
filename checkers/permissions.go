package checkers

import (
	"fmt"
	"os"

	"github.com/migcheck/migcheck/internal/contract"
)

// PermissionInfo is the native record for one script missing the owner
// execute bit.
type PermissionInfo struct {
	FilePath     string // relative to the project root
	CurrentMode  string // e.g. "-rw-r--r-- (644)"
	ExpectedMode string
	FixCommand   string
}

// PermissionsResult is the native result of a permissions check.
type PermissionsResult struct {
	FilesChecked int
	Unreadable   []string
	Issues       []PermissionInfo
}

// permissionsChecker verifies that shell scripts carry the owner execute
// bit. Missing execute is a warning by default; escalation for scripts
// referenced as project entrypoints would need configuration metadata
// outside this checker's scope.
type permissionsChecker struct {
	root    string
	scripts []string
}

// NewPermissionsChecker creates a permissions checker over the given
// pre-discovered shell scripts.
func NewPermissionsChecker(root string, scripts []string) contract.Checker {
	return &permissionsChecker{root: root, scripts: scripts}
}

func (c *permissionsChecker) Name() string { return PermissionsName }

func (c *permissionsChecker) run() PermissionsResult {
	var result PermissionsResult

	for _, path := range c.scripts {
		info, err := os.Stat(path)
		if err != nil {
			result.Unreadable = append(result.Unreadable, contract.RelPath(c.root, path))
			continue
		}
		result.FilesChecked++

		if info.Mode()&0o100 != 0 {
			continue // owner already has execute
		}
		rel := contract.RelPath(c.root, path)
		result.Issues = append(result.Issues, PermissionInfo{
			FilePath:     rel,
			CurrentMode:  fmt.Sprintf("%s (%03o)", info.Mode().Perm(), info.Mode().Perm()),
			ExpectedMode: "-rwxr-xr-x (755)",
			FixCommand:   chmodCommand(rel),
		})
	}
	return result
}

// chmodCommand builds the idempotent per-file chmod command. The guard
// is belt and braces: re-chmod of an executable file is already harmless.
func chmodCommand(relPath string) string {
	q := shq(relPath)
	return fmt.Sprintf("if [ ! -x %s ]; then chmod +x %s; fi", q, q)
}
