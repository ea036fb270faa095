// Package output persists generated stages as <name>.vert and <name>.frag.
package output

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/shadersplit/pkg/fsutil"
	"github.com/yaklabco/shadersplit/pkg/shader"
)

// ErrEmptyName is returned when no base name is given.
var ErrEmptyName = errors.New("empty shader name")

// OverwritePolicy controls whether unchanged stage files are rewritten.
type OverwritePolicy string

const (
	// OverwriteAlways rewrites every stage file.
	OverwriteAlways OverwritePolicy = "always"

	// OverwriteIfChanged leaves stage files alone when their content matches.
	OverwriteIfChanged OverwritePolicy = "if-changed"
)

// IsValid returns true if the policy is known.
func (p OverwritePolicy) IsValid() bool {
	return p == OverwriteAlways || p == OverwriteIfChanged
}

// Options tunes WriteStages.
type Options struct {
	// Overwrite defaults to OverwriteAlways.
	Overwrite OverwritePolicy

	// DryRun reports the target paths without touching the file system.
	DryRun bool

	// Backup keeps a sidecar copy of a stage file before its first overwrite.
	Backup bool
}

// WrittenFile describes one stage file handled by WriteStages.
type WrittenFile struct {
	Stage shader.StageType
	Path  string

	// Written is false when the file was skipped because it was unchanged
	// or because of a dry run.
	Written bool

	// BackedUp is true if a sidecar backup was created for this file.
	BackedUp bool
}

// persistedStages are the stages that get their own files.
//
//nolint:gochecknoglobals // Read-only lookup table.
var persistedStages = []shader.StageType{shader.StageVertex, shader.StageFragment}

// StagePath joins dir, name and the stage extension. A dir without a trailing
// separator gets one; an empty dir means the current directory.
func StagePath(dir, name string, stage shader.StageType) string {
	return NormalizeDir(dir) + name + stage.Extension()
}

// NormalizeDir appends a path separator to a non-empty dir that lacks one.
func NormalizeDir(dir string) string {
	if dir == "" {
		return ""
	}
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}

// BaseName returns the file name of path without its extension, the name the
// stage files are written under.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteStages writes the vertex and fragment stages of result into dir.
// Empty stages are skipped. The directory is created when missing.
func WriteStages(ctx context.Context, dir, name string, result *shader.ParseResult, opts Options) ([]WrittenFile, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if opts.Overwrite == "" {
		opts.Overwrite = OverwriteAlways
	}

	var files []WrittenFile
	for _, stage := range persistedStages {
		content := result.Stages[stage]
		if content == "" {
			continue
		}

		file := WrittenFile{Stage: stage, Path: StagePath(dir, name, stage)}
		if opts.DryRun {
			files = append(files, file)
			continue
		}

		if err := fsutil.EnsureDir(dir); err != nil {
			return files, fmt.Errorf("prepare output directory: %w", err)
		}

		if opts.Backup {
			backedUp, err := fsutil.CreateBackup(ctx, file.Path)
			if err != nil {
				return files, fmt.Errorf("back up %s: %w", file.Path, err)
			}
			file.BackedUp = backedUp
		}

		written, err := write(ctx, file.Path, []byte(content), opts.Overwrite)
		if err != nil {
			return files, fmt.Errorf("write %s stage: %w", stage, err)
		}
		file.Written = written
		files = append(files, file)
	}

	return files, nil
}

func write(ctx context.Context, path string, content []byte, policy OverwritePolicy) (bool, error) {
	if policy == OverwriteIfChanged {
		return fsutil.WriteAtomicIfChanged(ctx, path, content, 0)
	}
	if err := fsutil.WriteAtomic(ctx, path, content, 0); err != nil {
		return false, err
	}
	return true, nil
}
