package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/shadersplit/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level build report.
type JSONOutput struct {
	Version string      `json:"version"`
	Files   []JSONFile  `json:"files"`
	Summary JSONSummary `json:"summary"`
}

// JSONFile is the outcome of one combined shader.
type JSONFile struct {
	Path       string      `json:"path"`
	Error      string      `json:"error,omitempty"`
	Failed     bool        `json:"failed"`
	Parameters int         `json:"parameters"`
	Stages     []JSONStage `json:"stages"`
	Notes      []string    `json:"notes,omitempty"`
	Languages  []string    `json:"languageWarnings,omitempty"`
}

// JSONStage is one stage file.
type JSONStage struct {
	Stage    string `json:"stage"`
	Path     string `json:"path"`
	Written  bool   `json:"written"`
	BackedUp bool   `json:"backedUp,omitempty"`
}

// JSONSummary mirrors runner.Stats.
type JSONSummary struct {
	FilesDiscovered  int  `json:"filesDiscovered"`
	FilesProcessed   int  `json:"filesProcessed"`
	FilesErrored     int  `json:"filesErrored"`
	FilesFailed      int  `json:"filesFailed"`
	StagesGenerated  int  `json:"stagesGenerated"`
	StagesWritten    int  `json:"stagesWritten"`
	StagesUnchanged  int  `json:"stagesUnchanged"`
	Notes            int  `json:"notes"`
	LanguageWarnings int  `json:"languageWarnings"`
	DryRun           bool `json:"dryRun,omitempty"`
}

// JSONReporter writes machine-readable output.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	out := r.buildOutput(result)
	if err := r.encode(out); err != nil {
		return 0, err
	}
	return out.Summary.FilesFailed, nil
}

// Inspect implements Reporter.
func (r *JSONReporter) Inspect(_ context.Context, in *Inspection) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	return r.encode(in)
}

func (r *JSONReporter) encode(v any) error {
	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	out := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFile, 0),
		Summary: JSONSummary{DryRun: r.opts.DryRun},
	}
	if result == nil {
		return out
	}

	for _, file := range result.Files {
		jf := JSONFile{
			Path:   displayPath(r.opts.WorkingDir, file.Path),
			Failed: file.Failed(result.Strict),
			Stages: make([]JSONStage, 0, len(file.Files)),
		}
		if file.Error != nil {
			jf.Error = file.Error.Error()
		}
		if file.Result != nil {
			jf.Parameters = len(file.Result.Parameters)
			for _, n := range file.Result.Notes {
				jf.Notes = append(jf.Notes, n.Message)
			}
		}
		for _, w := range file.Languages {
			jf.Languages = append(jf.Languages, fmt.Sprintf("%s body looks like %s", w.Stage, w.Detected))
		}
		for _, f := range file.Files {
			jf.Stages = append(jf.Stages, JSONStage{
				Stage:    f.Stage.String(),
				Path:     displayPath(r.opts.WorkingDir, f.Path),
				Written:  f.Written,
				BackedUp: f.BackedUp,
			})
		}
		if jf.Failed {
			out.Summary.FilesFailed++
		}
		out.Files = append(out.Files, jf)
	}

	stats := result.Stats
	out.Summary.FilesDiscovered = stats.FilesDiscovered
	out.Summary.FilesProcessed = stats.FilesProcessed
	out.Summary.FilesErrored = stats.FilesErrored
	out.Summary.StagesGenerated = stats.StagesGenerated
	out.Summary.StagesWritten = stats.StagesWritten
	out.Summary.StagesUnchanged = stats.StagesUnchanged
	out.Summary.Notes = stats.Notes
	out.Summary.LanguageWarnings = stats.LanguageWarnings
	return out
}
