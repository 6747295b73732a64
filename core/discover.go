// Package core implements the orchestrator that discovers target files,
// executes registered checkers and aggregates the diagnostic report.
package core

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/migcheck/migcheck/checkers"
	"github.com/migcheck/migcheck/internal/contract"
)

// FileGroups classifies discovered files for checkers that need
// pre-filtered inputs. Paths are absolute; ordering follows the lexical
// walk so reports stay deterministic.
type FileGroups struct {
	Scripts []string // shell scripts, by extension or shebang
	Sources []string // source files subject to path-pattern scanning
	Configs []string // configuration and documentation files
}

var sourceExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".rb": true, ".pl": true,
	".go": true, ".java": true, ".c": true, ".cpp": true, ".h": true,
}

var configExtensions = map[string]bool{
	".yaml": true, ".yml": true, ".json": true, ".toml": true,
	".ini": true, ".cfg": true, ".conf": true, ".env": true,
	".txt": true, ".md": true,
}

// TextFiles returns the union of all groups, deduplicated, preserving
// discovery order. This is the line-endings scan set.
func (g *FileGroups) TextFiles() []string {
	seen := make(map[string]bool, len(g.Scripts)+len(g.Sources)+len(g.Configs))
	var out []string
	for _, group := range [][]string{g.Scripts, g.Sources, g.Configs} {
		for _, path := range group {
			if !seen[path] {
				seen[path] = true
				out = append(out, path)
			}
		}
	}
	return out
}

// Total returns the number of distinct discovered files.
func (g *FileGroups) Total() int {
	return len(g.TextFiles())
}

// DiscoverFiles walks the project tree once and classifies every
// relevant file. Excluded directories are pruned, not descended into.
func DiscoverFiles(root string, excludes []string) (*FileGroups, error) {
	groups := &FileGroups{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An inaccessible root means there is nothing to scan at all.
			if path == root {
				return err
			}
			// Unreadable subtree; the scan result is best-effort.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel := contract.RelPath(root, path)
		if d.IsDir() {
			if path != root && contract.ShouldIgnore(rel+"/", excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || contract.ShouldIgnore(rel, excludes) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		switch {
		case checkers.LooksLikeShellScript(path):
			groups.Scripts = append(groups.Scripts, path)
			if sourceExtensions[ext] {
				groups.Sources = append(groups.Sources, path)
			}
		case sourceExtensions[ext]:
			groups.Sources = append(groups.Sources, path)
		case configExtensions[ext]:
			groups.Configs = append(groups.Configs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}
