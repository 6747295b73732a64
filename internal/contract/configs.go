package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/migcheck/migcheck/schema"
)

// Default values for configuration.
const (
	DefaultToolTimeout    = 10 * time.Second
	DefaultProbeTimeout   = 15 * time.Second
	DefaultVenvTimeout    = 30 * time.Second
	DefaultInstallTimeout = 5 * time.Minute
)

// DefaultExcludes are directory names that are never worth scanning.
var DefaultExcludes = []string{
	".git/", ".hg/", ".svn/",
	"__pycache__", "node_modules", ".venv/", "venv",
	"build/", "dist/", ".pytest_cache/", ".mypy_cache/", "site-packages",
}

// DefaultCheckers is the registration order used when the user does not
// narrow the set. Registration order is part of the report's observable
// behavior, so this list is ordered deliberately: cheap file scans first,
// environment probes last.
var DefaultCheckers = []string{
	schema.CategoryLineEndings,
	schema.CategoryPermissions,
	schema.CategoryPath,
	schema.CategoryDependency,
	schema.CategoryConnectivity,
}

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a diagnostic run.
// This struct remains the "final, validated" config.
type Config struct {
	ProjectRoot string
	ProjectName string
	Checkers    []string
	Excludes    []string
	FullMode    bool

	Output     schema.OutputMode
	OutputFile string
	FixScript  string
	UseColors  bool
	UseEmojis  bool
	Width      int // Terminal width override (0 = auto-detect)

	ToolTimeout    time.Duration
	ProbeTimeout   time.Duration
	InstallTimeout time.Duration

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ProjectRootStr string

	Checkers         string `mapstructure:"checkers"`
	Exclude          string `mapstructure:"exclude"`
	Full             bool   `mapstructure:"full"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	FixScript        string `mapstructure:"fix-script"`
	Project          string `mapstructure:"project"`
	Color            string `mapstructure:"color"`
	Emoji            string `mapstructure:"emoji"`
	Width            int    `mapstructure:"width"`
	ToolTimeout      string `mapstructure:"tool-timeout"`
	ProbeTimeout     string `mapstructure:"probe-timeout"`
	InstallTimeout   string `mapstructure:"install-timeout"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
}

// ProcessAndValidate populates cfg from raw input, resolving paths and
// validating enums. The project root must exist and be a directory; that
// is the one fatal environment error no checker can recover from.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	root := input.ProjectRootStr
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("cannot resolve project root %q: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return fmt.Errorf("project root %q is not accessible: %w", absRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project root %q is not a directory", absRoot)
	}
	cfg.ProjectRoot = absRoot

	cfg.ProjectName = input.Project
	if cfg.ProjectName == "" {
		cfg.ProjectName = filepath.Base(absRoot)
	}

	cfg.Checkers = splitList(input.Checkers)
	if len(cfg.Checkers) == 0 {
		cfg.Checkers = append(cfg.Checkers, DefaultCheckers...)
	}
	for _, name := range cfg.Checkers {
		if !ValidCheckerName(name) {
			return fmt.Errorf("unknown checker %q (valid: %s)", name, strings.Join(DefaultCheckers, ", "))
		}
	}

	cfg.Excludes = append([]string{}, DefaultExcludes...)
	cfg.Excludes = append(cfg.Excludes, splitList(input.Exclude)...)

	cfg.FullMode = input.Full

	switch schema.OutputMode(input.Output) {
	case schema.ConsoleOut, schema.MarkdownOut, schema.ParquetOut:
		cfg.Output = schema.OutputMode(input.Output)
	case "":
		cfg.Output = schema.ConsoleOut
	default:
		return fmt.Errorf("unknown output format %q (valid: console, markdown, parquet)", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.FixScript = input.FixScript
	cfg.Width = input.Width

	if cfg.UseColors, err = parseToggle(input.Color, true); err != nil {
		return fmt.Errorf("invalid color flag: %w", err)
	}
	if cfg.UseEmojis, err = parseToggle(input.Emoji, true); err != nil {
		return fmt.Errorf("invalid emoji flag: %w", err)
	}

	if cfg.ToolTimeout, err = parseTimeout(input.ToolTimeout, DefaultToolTimeout); err != nil {
		return fmt.Errorf("invalid tool-timeout: %w", err)
	}
	if cfg.ProbeTimeout, err = parseTimeout(input.ProbeTimeout, DefaultProbeTimeout); err != nil {
		return fmt.Errorf("invalid probe-timeout: %w", err)
	}
	if cfg.InstallTimeout, err = parseTimeout(input.InstallTimeout, DefaultInstallTimeout); err != nil {
		return fmt.Errorf("invalid install-timeout: %w", err)
	}

	switch schema.DatabaseBackend(input.HistoryBackend) {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend, schema.NoneBackend:
		cfg.HistoryBackend = schema.DatabaseBackend(input.HistoryBackend)
	case "":
		cfg.HistoryBackend = schema.NoneBackend
	default:
		return fmt.Errorf("unsupported history backend: %s. Must be sqlite, mysql, postgresql, or none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect

	return nil
}

// Clone returns a copy of the config with its slices duplicated, so a
// caller can override fields without mutating the shared base config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Checkers = append([]string{}, c.Checkers...)
	clone.Excludes = append([]string{}, c.Excludes...)
	return &clone
}

// ValidCheckerName reports whether name is a registered checker.
func ValidCheckerName(name string) bool {
	for _, known := range DefaultCheckers {
		if name == known {
			return true
		}
	}
	return false
}

// splitList splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseToggle parses a yes/no style flag, defaulting when unset.
func parseToggle(s string, fallback bool) (bool, error) {
	if s == "" {
		return fallback, nil
	}
	return ParseBoolString(s)
}

// parseTimeout parses a Go duration string, defaulting when unset.
func parseTimeout(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", d)
	}
	return d, nil
}
