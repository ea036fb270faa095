package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/shadersplit/pkg/output"
)

// FormatDiff renders a stage diff with added lines in the success color and
// removed lines in the failure color. path replaces the diff's own path.
func (s *Styles) FormatDiff(path string, d *output.Diff) string {
	if d == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.Bold.Render("--- "+path) + "\n")
	b.WriteString(s.Bold.Render("+++ "+path) + "\n")
	for _, h := range d.Hunks {
		b.WriteString(s.Info.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			h.OldStart, h.OldLines, h.NewStart, h.NewLines)) + "\n")
		for _, l := range h.Lines {
			text := string(l.Op) + l.Text
			switch l.Op {
			case output.OpAdd:
				text = s.Success.Render(text)
			case output.OpRemove:
				text = s.Failure.Render(text)
			}
			b.WriteString(text + "\n")
		}
	}
	return b.String()
}
