package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer receives the report. Defaults to os.Stdout.
	Writer io.Writer

	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowSummary prints the one-line summary after a build report.
	ShowSummary bool

	// Verbose lists every written stage file, not only problems.
	Verbose bool

	// Compact disables JSON indentation.
	Compact bool

	// DryRun changes the wording of the summary.
	DryRun bool

	// WorkingDir makes reported paths relative when set.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}
