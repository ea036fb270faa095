package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover returns the combined shader files selected by opts as sorted,
// de-duplicated absolute paths. Hidden files and directories are skipped
// unless named explicitly.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if d.matches(abs) {
				d.add(abs)
			}
			continue
		}
		if err := d.walk(abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	ctx        context.Context
	workDir    string
	extensions []string
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || d.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.symlink(path)
		}

		if d.matches(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a symlink found while walking. Broken links are skipped;
// directory links are walked only with FollowSymlinks, through their target
// so a link cycle cannot recurse through the link itself.
func (d *discoverer) symlink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // Broken symlinks are skipped.
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Unreadable targets are skipped.
	}

	if info.IsDir() {
		if !d.opts.FollowSymlinks {
			return nil
		}
		return d.walk(target)
	}

	if d.matches(path) {
		d.add(path)
	}
	return nil
}

func (d *discoverer) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.ContainsFunc(d.extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}
	return !d.excluded(path)
}

func (d *discoverer) excluded(path string) bool {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		rel = path
	}
	for _, pattern := range d.opts.ExcludeGlobs {
		if MatchGlob(rel, pattern) {
			return true
		}
	}
	return false
}

// Selects reports whether discovery would pick up the file at path, judging
// by extension and exclude globs.
func Selects(opts Options, path string) bool {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		workDir = ""
	}
	d := &discoverer{workDir: workDir, extensions: opts.effectiveExtensions(), opts: opts}
	return d.matches(path)
}

// Excludes reports whether path matches one of the exclude globs.
func Excludes(opts Options, path string) bool {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		workDir = ""
	}
	d := &discoverer{workDir: workDir, opts: opts}
	return d.excluded(path)
}

// Roots returns the absolute inputs of opts, defaulting to the working
// directory.
func Roots(opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	roots := make([]string, 0, len(opts.effectivePaths()))
	for _, input := range opts.effectivePaths() {
		if !filepath.IsAbs(input) {
			input = filepath.Join(workDir, input)
		}
		roots = append(roots, filepath.Clean(input))
	}
	return roots, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

// MatchGlob matches a slash-separated relative path against pattern.
// Besides filepath.Match syntax it understands "dir/**" (everything below
// dir), "**/name" (name as any path component) and a bare pattern that is
// tried against the file name alone.
func MatchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if before, after, ok := strings.Cut(pattern, "**"); ok {
		prefix := strings.TrimSuffix(before, "/")
		suffix := strings.TrimPrefix(after, "/")

		if prefix != "" && path != prefix && !strings.HasPrefix(path, prefix+"/") {
			return false
		}
		if suffix == "" {
			return true
		}
		for _, part := range strings.Split(path, "/") {
			if matched, _ := filepath.Match(suffix, part); matched {
				return true
			}
		}
		matched, _ := filepath.Match(suffix, filepath.Base(path))
		return matched || strings.HasSuffix(path, "/"+suffix)
	}

	if ok, _ := filepath.Match(pattern, path); ok {
		return true
	}
	ok, _ := filepath.Match(pattern, filepath.Base(path))
	return ok
}
