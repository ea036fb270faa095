// Package reporter renders build results and shader inspections.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/shadersplit/pkg/runner"
)

// Reporter writes build results and inspections in one format.
type Reporter interface {
	// Report writes a build result and returns the number of failed files.
	Report(ctx context.Context, result *runner.Result) (int, error)

	// Inspect writes the structure of a single parsed shader.
	Inspect(ctx context.Context, inspection *Inspection) error
}

// New creates a Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// displayPath shortens path relative to workDir when possible.
func displayPath(workDir, path string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == "" || (len(rel) > 1 && rel[:2] == "..") {
		return path
	}
	return rel
}

// countFailures counts the outcomes that fail the run.
func countFailures(result *runner.Result) int {
	if result == nil {
		return 0
	}
	failed := 0
	for _, f := range result.Files {
		if f.Failed(result.Strict) {
			failed++
		}
	}
	return failed
}
