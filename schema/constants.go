package schema

// Custom string types for type safety.
type (
	// Severity represents how serious a detected issue is.
	Severity string

	// Status represents the outcome of a single checker run.
	Status string

	// RiskLevel represents how risky it is to apply a fix unattended.
	RiskLevel string

	// IssueType represents a checker-specific classification of an issue.
	IssueType string

	// OutputMode represents the format of the rendered report.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All issue severities, ordered from most to least serious.
const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
)

// All checker statuses.
const (
	StatusPass    Status = "PASS"
	StatusWarning Status = "WARNING"
	StatusFail    Status = "FAIL"
	StatusSkip    Status = "SKIP"
)

// All fix risk levels.
const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Issue categories shared across checkers and reports.
const (
	CategoryLineEndings  = "line-endings"
	CategoryPermissions  = "permissions"
	CategoryPath         = "path"
	CategoryDependency   = "dependency"
	CategoryConnectivity = "connectivity"
)

// All output modes supported.
const (
	ConsoleOut  OutputMode = "console" // default
	MarkdownOut OutputMode = "markdown"
	ParquetOut  OutputMode = "parquet"
)

// All database backends supported for run history.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// statusRank orders statuses from worst to best for exit-code derivation.
// FAIL > WARNING > PASS > SKIP per the reporting contract.
var statusRank = map[Status]int{
	StatusFail:    3,
	StatusWarning: 2,
	StatusPass:    1,
	StatusSkip:    0,
}
