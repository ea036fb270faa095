package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/shadersplit/internal/ui/pretty"
	"github.com/yaklabco/shadersplit/pkg/runner"
)

// TextReporter writes styled line-oriented output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)

		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
			continue
		}
		if file.Result == nil {
			continue
		}

		quiet := len(file.Result.Notes) == 0 && len(file.Languages) == 0
		if quiet && !r.opts.Verbose {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Files)))
		for _, note := range file.Result.Notes {
			fmt.Fprint(r.bw, r.styles.FormatNote(path, note))
		}
		for _, w := range file.Languages {
			fmt.Fprint(r.bw, r.styles.FormatLanguageWarning(path, w.Stage, w.Detected))
		}
		if r.opts.Verbose {
			for _, f := range file.Files {
				state := "written"
				switch {
				case r.opts.DryRun:
					state = "planned"
				case !f.Written:
					state = "unchanged"
				}
				fmt.Fprintf(r.bw, "  %s %s %s\n",
					r.styles.Stage.Render(f.Stage.String()),
					displayPath(r.opts.WorkingDir, f.Path),
					r.styles.Dim.Render(state))
			}
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.DryRun))
	}

	return countFailures(result), nil
}

// Inspect implements Reporter.
func (r *TextReporter) Inspect(_ context.Context, in *Inspection) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	fmt.Fprintln(r.bw, r.styles.Bold.Render(displayPath(r.opts.WorkingDir, in.Path)))
	fmt.Fprintf(r.bw, "  version: #%s\n", in.Version)
	fmt.Fprintf(r.bw, "  lines:   %d\n", in.Lines)

	fmt.Fprintln(r.bw, r.styles.Bold.Render("parameters"))
	if len(in.Parameters) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("  none"))
	}
	for _, p := range in.Parameters {
		fmt.Fprintf(r.bw, "  %s %s %s\n",
			r.styles.Keyword.Render(p.Keyword),
			p.Name,
			r.styles.Dim.Render(fmt.Sprintf("(%s, line %d)", p.Type, p.Line)))
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("stages"))
	if len(in.Stages) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("  none"))
	}
	for _, s := range in.Stages {
		fmt.Fprintf(r.bw, "  %s lines %d-%d %s\n",
			r.styles.Stage.Render(s.Stage),
			s.StartLine, s.EndLine,
			r.styles.Dim.Render(fmt.Sprintf("(%d body lines, %s)", s.BodyLines, s.Language)))
	}

	for _, n := range in.Notes {
		fmt.Fprintln(r.bw, r.styles.Warning.Render("note: ")+n)
	}
	return nil
}
