// Package runner builds many combined shaders in one run.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/shadersplit/pkg/output"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

// Options controls a multi-file build.
type Options struct {
	// Paths are files or directories to process. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process working
	// directory.
	WorkingDir string

	// Extensions selects combined shader files (lowercase, leading dot).
	// Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files or directories, relative to WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks bool

	// Jobs bounds concurrent parses. 0 or negative means runtime.GOMAXPROCS(0).
	Jobs int

	// OutputDir receives the stage files. Empty writes next to each source.
	OutputDir string

	// Write controls how stage files are persisted.
	Write output.Options

	// NestedPolicy is passed to every engine.
	NestedPolicy shader.NestedPolicy

	// Strict turns parse notes into file failures.
	Strict bool

	// CheckLanguage flags stage bodies that do not look like GLSL.
	CheckLanguage bool

	// Logger is attached to every engine. Optional.
	Logger *log.Logger
}

// DefaultExtensions returns the extensions of combined shader files.
func DefaultExtensions() []string {
	return []string{".glshader", ".shader"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) engineOptions() []shader.Option {
	opts := []shader.Option{shader.WithNestedPolicy(o.NestedPolicy)}
	if o.Logger != nil {
		opts = append(opts, shader.WithLogger(o.Logger))
	}
	return opts
}
