// Package outwriter has report rendering and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/migcheck/migcheck/internal/contract"
	"github.com/migcheck/migcheck/internal/parquet"
	"github.com/migcheck/migcheck/schema"
)

// OutWriter provides a unified interface for all report output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport renders the report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.TestReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMarkdownReport(w, report)
		})
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteReport(w, report)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeConsoleReport(w, report, cfg)
		})
	}
}

// writeWithFile opens the destination (stdout when path is empty), runs
// the writer callback and closes the file.
func writeWithFile(path string, write func(io.Writer) error) error {
	f, err := contract.SelectOutputFile(path)
	if err != nil {
		return err
	}
	if f != os.Stdout {
		defer func() { _ = f.Close() }()
	}
	return write(f)
}

// getMaxPathWidth calculates the maximum width for file paths in table
// output based on terminal width.
func getMaxPathWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the severity, type and line columns plus borders.
	available := termWidth - 45
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
