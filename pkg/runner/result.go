package runner

import (
	"github.com/yaklabco/shadersplit/pkg/langdetect"
	"github.com/yaklabco/shadersplit/pkg/output"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

// LanguageWarning flags a stage body that does not look like GLSL.
type LanguageWarning struct {
	Stage    shader.StageType
	Detected langdetect.Language
}

// FileOutcome is the result of building one combined shader.
type FileOutcome struct {
	// Path is the absolute source path.
	Path string

	// Result is nil when Error is set.
	Result *shader.ParseResult

	// Files lists the stage files written (or planned, in a dry run).
	Files []output.WrittenFile

	// Languages lists bodies that look like another shading language.
	Languages []LanguageWarning

	// Error is a fatal parse or write failure.
	Error error
}

// Failed reports whether the outcome counts as a failure under strict.
func (o FileOutcome) Failed(strict bool) bool {
	if o.Error != nil {
		return true
	}
	return strict && o.Result != nil && len(o.Result.Notes) > 0
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// StagesGenerated counts stage files the run produced content for.
	StagesGenerated int

	// StagesWritten counts stage files actually written to disk.
	StagesWritten int

	// StagesUnchanged counts stage files skipped because they were current.
	StagesUnchanged int

	Parameters       int
	Notes            int
	LanguageWarnings int
}

// Result is the outcome of a run, files in discovery order.
type Result struct {
	Files  []FileOutcome
	Stats  Stats
	Strict bool
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	for _, f := range r.Files {
		if f.Failed(r.Strict) {
			return true
		}
	}
	return false
}

// HasNotes reports whether any file produced notes or language warnings.
func (r *Result) HasNotes() bool {
	if r == nil {
		return false
	}
	return r.Stats.Notes > 0 || r.Stats.LanguageWarnings > 0
}

func (r *Result) accumulate(outcome FileOutcome, dryRun bool) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Parameters += len(outcome.Result.Parameters)
	r.Stats.Notes += len(outcome.Result.Notes)
	r.Stats.LanguageWarnings += len(outcome.Languages)
	r.Stats.StagesGenerated += len(outcome.Files)

	if dryRun {
		return
	}
	for _, f := range outcome.Files {
		if f.Written {
			r.Stats.StagesWritten++
		} else {
			r.Stats.StagesUnchanged++
		}
	}
}
