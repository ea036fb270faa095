package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/shadersplit/pkg/runner"
)

// plural returns word with an "s" unless n is one.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatSummaryOneLine summarizes a build.
// Example: "3 shaders built, 6 stages written, 2 unchanged, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No combined shaders found.") + "\n"
	}

	var parts []string
	parts = append(parts, plural(stats.FilesProcessed, "shader")+" built")

	switch {
	case dryRun:
		parts = append(parts, s.Dim.Render(plural(stats.StagesGenerated, "stage")+" would be written"))
	default:
		parts = append(parts, s.Success.Render(plural(stats.StagesWritten, "stage")+" written"))
		if stats.StagesUnchanged > 0 {
			parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", stats.StagesUnchanged)))
		}
	}

	if stats.Notes > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.Notes, "note")))
	}
	if stats.LanguageWarnings > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.LanguageWarnings, "language warning")))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}
