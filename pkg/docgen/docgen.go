// Package docgen renders a parameter reference for a combined shader as
// Markdown, and optionally as HTML through goldmark.
package docgen

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/shadersplit/pkg/output"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

// Options controls what the reference contains.
type Options struct {
	// Title overrides the document heading. Defaults to the shader base name.
	Title string

	// OmitStages drops the stage table.
	OmitStages bool

	// OmitNotes drops the notes list.
	OmitNotes bool
}

// Markdown renders the reference for res.
func Markdown(ctx context.Context, res *shader.ParseResult, opts Options) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if res == nil {
		return nil, ErrNilResult
	}

	name := output.BaseName(res.Path)
	title := opts.Title
	if title == "" {
		title = name
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", escapeInline(title))

	if res.Config.Version != "" {
		fmt.Fprintf(&buf, "Version: `#%s`\n\n", res.Config.Version)
	} else {
		buf.WriteString("Version: _none_\n\n")
	}

	writeParameters(&buf, res.Parameters)

	if !opts.OmitStages {
		writeStages(&buf, res, name)
	}

	if !opts.OmitNotes && len(res.Notes) > 0 {
		buf.WriteString("## Notes\n\n")
		for _, n := range res.Notes {
			fmt.Fprintf(&buf, "- **%s**: %s\n", n.Severity, escapeInline(n.Message))
		}
		buf.WriteString("\n")
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func writeParameters(buf *bytes.Buffer, params []shader.Parameter) {
	buf.WriteString("## Parameters\n\n")
	if len(params) == 0 {
		buf.WriteString("_No parameters._\n\n")
		return
	}

	buf.WriteString("| Name | GLSL | Type | GL enum | Line |\n")
	buf.WriteString("|------|------|------|---------|-----:|\n")
	for _, p := range params {
		fmt.Fprintf(buf, "| `%s` | `%s` | %s | `0x%04X` | %d |\n",
			p.Name, p.Type.Keyword(), p.Type, p.Type.GLEnum(), p.Line)
	}
	buf.WriteString("\n")
}

func writeStages(buf *bytes.Buffer, res *shader.ParseResult, name string) {
	buf.WriteString("## Stages\n\n")
	if len(res.Blocks) == 0 {
		buf.WriteString("_No stages._\n\n")
		return
	}

	buf.WriteString("| Stage | Lines | Output |\n")
	buf.WriteString("|-------|-------|--------|\n")
	for _, b := range res.Blocks {
		out := "-"
		if b.Stage == shader.StageVertex || b.Stage == shader.StageFragment {
			out = "`" + output.StagePath("", name, b.Stage) + "`"
		}
		fmt.Fprintf(buf, "| %s | %d-%d | %s |\n", b.Stage, b.StartLine, b.EndLine, out)
	}
	buf.WriteString("\n")
}

// escapeInline escapes characters that would break a heading, list item or
// table cell.
func escapeInline(s string) string {
	r := strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`")
	return r.Replace(s)
}
