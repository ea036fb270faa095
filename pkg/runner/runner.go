package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/shadersplit/pkg/langdetect"
	"github.com/yaklabco/shadersplit/pkg/output"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

// Runner builds combined shaders concurrently.
type Runner struct {
	opts Options
}

// New creates a Runner.
func New(opts Options) *Runner {
	return &Runner{opts: opts}
}

// Run discovers combined shaders and builds each with its own engine.
// Per-file failures are recorded on the outcome; the returned error is only
// set for discovery failures or cancellation.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	files, err := Discover(ctx, r.opts)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files)
}

// RunFiles builds the given files, skipping discovery. Outcomes keep the
// order of files.
func (r *Runner) RunFiles(ctx context.Context, files []string) (*Result, error) {
	result := &Result{
		Files:  make([]FileOutcome, 0, len(files)),
		Strict: r.opts.Strict,
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one index, so no locking is needed.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			outcomes[i] = r.BuildFile(gctx, path)
			done[i] = true
			return nil
		})
	}

	waitErr := g.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome, r.opts.Write.DryRun)
		}
	}

	if waitErr != nil {
		return result, fmt.Errorf("run cancelled: %w", waitErr)
	}
	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

// BuildFile parses path with a fresh engine and writes its stages.
func (r *Runner) BuildFile(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	engine := shader.New(r.opts.engineOptions()...)
	res, err := engine.Parse(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Result = res

	if r.opts.CheckLanguage {
		outcome.Languages = checkLanguages(res)
	}

	if r.opts.Strict && len(res.Notes) > 0 {
		// Strict runs do not write files that produced notes.
		return outcome
	}

	dir := r.opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(path)
	}

	written, err := output.WriteStages(ctx, dir, output.BaseName(path), res, r.opts.Write)
	outcome.Files = written
	if err != nil {
		outcome.Error = err
	}
	return outcome
}

func checkLanguages(res *shader.ParseResult) []LanguageWarning {
	var warnings []LanguageWarning
	for _, block := range res.Blocks {
		body := []byte(block.Body)
		if langdetect.IsGLSL(body) {
			continue
		}
		warnings = append(warnings, LanguageWarning{Stage: block.Stage, Detected: langdetect.Detect(body)})
	}
	return warnings
}
