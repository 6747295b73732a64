// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/migcheck/migcheck/schema"
)

// Checker is the contract every diagnostic checker implements.
//
// Check must never fail because of a missing or malformed target file;
// such conditions become Issues inside the returned result. The error
// return is reserved for catastrophic environment failure (for example
// a vanished project root). A checker accumulates issues locally per
// call and holds no state between invocations; concurrent reuse of one
// instance across overlapping calls is unsupported.
type Checker interface {
	// Name returns the stable identifier used in reports.
	Name() string

	// Check runs the diagnostic and returns a normalized result.
	Check(ctx context.Context) (schema.TestResult, error)
}

// ToolRunner defines the necessary operations for invoking external tools.
// This allows checkers that shell out (pip, venv, aws) to be tested
// without the real binaries installed.
type ToolRunner interface {
	// Run executes a command with the given timeout and returns stdout,
	// stderr and the execution error, if any. A deadline overrun yields
	// an error wrapping context.DeadlineExceeded.
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) (stdout, stderr []byte, err error)

	// LookPath reports whether the named binary is resolvable on PATH.
	LookPath(name string) (string, error)
}

// HistoryStore defines the interface for tracking diagnostic runs.
// This allows the history layer to be mocked for testing. The framework
// core never writes here; only the CLI edge records completed reports.
type HistoryStore interface {
	// RecordRun persists a completed report and returns its unique ID.
	RecordRun(report *schema.TestReport) (int64, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all recorded runs.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
