package pretty

import (
	"fmt"

	"github.com/yaklabco/shadersplit/pkg/langdetect"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

// FormatFileError renders a fatal per-file failure.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s %s\n",
		s.FilePath.Render(path),
		s.Error.Render("error"),
		s.Message.Render(err.Error()))
}

// FormatNote renders a non-fatal parse note.
func (s *Styles) FormatNote(path string, note shader.Note) string {
	return fmt.Sprintf("  %s  %s  %s\n",
		s.Location.Render(path),
		s.FormatSeverity(note.Severity),
		s.Message.Render(note.Message))
}

// FormatLanguageWarning renders a stage body that does not look like GLSL.
func (s *Styles) FormatLanguageWarning(path string, stage shader.StageType, lang langdetect.Language) string {
	return fmt.Sprintf("  %s  %s  %s body looks like %s\n",
		s.Location.Render(path),
		s.Warning.Render("warning"),
		s.Stage.Render(stage.String()),
		lang)
}

// FormatSeverity returns a styled severity label.
func (s *Styles) FormatSeverity(sev shader.Severity) string {
	switch sev {
	case shader.SeverityWarning:
		return s.Warning.Render("warning")
	case shader.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatFileHeader renders a file heading with the number of stages written.
func (s *Styles) FormatFileHeader(path string, stages int) string {
	return s.FilePath.Render(path) + s.Dim.Render(fmt.Sprintf(" (%s)", plural(stages, "stage")))
}
