package shader

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/shadersplit/pkg/fsutil"
)

// Engine runs the scan, process and generate phases over one combined
// shader at a time. An Engine holds only settings, so a single value may be
// reused for sequential parses; concurrent callers should use one Engine
// each.
type Engine struct {
	logger *log.Logger
	nested NestedPolicy
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger for phase tracing and note reporting.
// Without one the engine is silent.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithNestedPolicy sets how a region or block opened inside another is handled.
// Unknown policies are ignored.
func WithNestedPolicy(policy NestedPolicy) Option {
	return func(e *Engine) {
		if policy.IsValid() {
			e.nested = policy
		}
	}
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{nested: NestedReject}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse reads the combined shader at path and splits it into stages.
// Read failures wrap ErrIO together with the fsutil cause.
func (e *Engine) Parse(ctx context.Context, path string) (*ParseResult, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, &ParseError{Path: path, Kind: ErrIO, Err: err}
	}
	return e.ParseSource(ctx, path, content)
}

// ParseSource splits an in-memory combined shader. name labels errors and
// the result; it is not opened.
func (e *Engine) ParseSource(ctx context.Context, name string, src []byte) (*ParseResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("parse %s: %w", name, ctx.Err())
	default:
	}

	scanner := &Scanner{Path: name, Nested: e.nested}
	scan, err := scanner.Scan(string(src))
	if err != nil {
		return nil, err
	}
	e.traceScan(name, scan)

	processed, err := Process(name, scan)
	if err != nil {
		return nil, err
	}
	e.debug("processed shader",
		"path", name,
		"version", processed.Config.Version,
		"parameters", len(processed.Parameters),
		"blocks", describeBlocks(processed.Blocks))

	stages := Generate(processed.Config, processed.Parameters, processed.Blocks)

	result := &ParseResult{
		Path:       name,
		Vertex:     stages[StageVertex],
		Fragment:   stages[StageFragment],
		Stages:     stages,
		Parameters: processed.Parameters,
		Config:     processed.Config,
		Blocks:     processed.Blocks,
		LineCount:  scan.LineCount,
		Notes:      processed.Notes,
	}
	e.reportNotes(name, result.Notes)

	return result, nil
}

func (e *Engine) traceScan(name string, scan *ScanResult) {
	if e.logger == nil {
		return
	}
	e.logger.Debug("scanned shader",
		"path", name,
		"lines", scan.LineCount,
		"directives", len(scan.Directives),
		"regions", len(scan.Regions),
		"blocks", len(scan.Blocks))

	if scan.UnclosedRegion != nil {
		e.logger.Debug("discarding unclosed region",
			"path", name,
			"kind", scan.UnclosedRegion.Kind,
			"line", scan.UnclosedRegion.StartLine)
	}
	if scan.UnclosedBlock != nil {
		e.logger.Debug("discarding unclosed shader block",
			"path", name,
			"kind", scan.UnclosedBlock.Kind,
			"line", scan.UnclosedBlock.StartLine)
	}
}

func (e *Engine) reportNotes(name string, notes []Note) {
	if e.logger == nil {
		return
	}
	for _, n := range notes {
		switch n.Severity {
		case SeverityWarning:
			e.logger.Warn(n.Message, "path", name)
		default:
			e.logger.Info(n.Message, "path", name)
		}
	}
}

func (e *Engine) debug(msg string, keyvals ...any) {
	if e.logger == nil {
		return
	}
	e.logger.Debug(msg, keyvals...)
}
