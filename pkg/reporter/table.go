package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/shadersplit/internal/ui/pretty"
	"github.com/yaklabco/shadersplit/pkg/runner"
)

// TableReporter writes results as styled tables sized to the terminal.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a table reporter.
func NewTableReporter(opts Options) *TableReporter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, pretty.TerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. One row is written per stage file, or per
// file when it failed or produced nothing.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(runner.Stats{}, r.opts.DryRun))
		}
		return 0, nil
	}

	table := pretty.Table{Headers: []string{"SOURCE", "STAGE", "OUTPUT", "STATUS"}}
	for _, file := range result.Files {
		table.Groups = append(table.Groups, len(table.Rows))
		source := displayPath(r.opts.WorkingDir, file.Path)

		switch {
		case file.Error != nil:
			r.addRow(&table, &r.styles.Error, source, "-", "-", file.Error.Error())
		case len(file.Files) == 0:
			status := "no stages"
			if file.Failed(result.Strict) {
				status = "skipped (strict)"
			}
			r.addRow(&table, &r.styles.Warning, source, "-", "-", status)
		default:
			for _, f := range file.Files {
				status := "written"
				switch {
				case r.opts.DryRun:
					status = "planned"
				case !f.Written:
					status = "unchanged"
				}
				if n := len(file.Result.Notes); n > 0 {
					status += " (" + strconv.Itoa(n) + " notes)"
				}
				r.addRow(&table, nil, source, f.Stage.String(), displayPath(r.opts.WorkingDir, f.Path), status)
			}
		}
	}

	fmt.Fprint(r.bw, r.formatter.Format(table))
	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.DryRun))
	}
	return countFailures(result), nil
}

func (r *TableReporter) addRow(t *pretty.Table, style *lipgloss.Style, cells ...string) {
	t.Rows = append(t.Rows, cells)
	t.RowStyles = append(t.RowStyles, style)
}

// Inspect implements Reporter.
func (r *TableReporter) Inspect(_ context.Context, in *Inspection) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	fmt.Fprintf(r.bw, "%s  %s\n\n",
		r.styles.Bold.Render(displayPath(r.opts.WorkingDir, in.Path)),
		r.styles.Dim.Render("#"+in.Version))

	params := pretty.Table{Headers: []string{"NAME", "GLSL", "TYPE", "GL ENUM", "LINE"}}
	for _, p := range in.Parameters {
		params.Rows = append(params.Rows, []string{
			p.Name, p.Keyword, p.Type.String(), fmt.Sprintf("0x%04X", p.GLEnum), strconv.Itoa(p.Line),
		})
	}
	fmt.Fprint(r.bw, r.formatter.Format(params))
	fmt.Fprintln(r.bw)

	stages := pretty.Table{Headers: []string{"STAGE", "LINES", "BODY", "LANGUAGE"}}
	for _, s := range in.Stages {
		stages.Rows = append(stages.Rows, []string{
			s.Stage, fmt.Sprintf("%d-%d", s.StartLine, s.EndLine), strconv.Itoa(s.BodyLines), string(s.Language),
		})
	}
	fmt.Fprint(r.bw, r.formatter.Format(stages))

	for _, n := range in.Notes {
		fmt.Fprintln(r.bw, r.styles.Warning.Render("note: ")+n)
	}
	return nil
}
