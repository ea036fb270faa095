// Package watch rebuilds combined shaders when they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/shadersplit/pkg/fsutil"
	"github.com/yaklabco/shadersplit/pkg/runner"
)

// DefaultDebounce is how long a path must be quiet before it is rebuilt.
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Build selects the watched files and controls each rebuild.
	Build runner.Options

	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration

	// Logger is optional.
	Logger *log.Logger

	// OnBuild receives every build outcome, including the initial build.
	// It is called from the goroutine running Run.
	OnBuild func(runner.FileOutcome)
}

// Watcher owns an fsnotify watcher and the state of one watch session.
// All state is confined to the goroutine running Run.
type Watcher struct {
	opts   Options
	runner *runner.Runner
	logger *log.Logger
	fsw    *fsnotify.Watcher

	pending      map[string]time.Time
	fingerprints map[string]*fsutil.FileInfo
	ready        chan struct{}
}

// New creates a Watcher. Run must be called to start it.
func New(opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Watcher{
		opts:         opts,
		runner:       runner.New(opts.Build),
		logger:       logger,
		fsw:          fsw,
		pending:      make(map[string]time.Time),
		fingerprints: make(map[string]*fsutil.FileInfo),
		ready:        make(chan struct{}),
	}, nil
}

// Ready is closed once the initial build finished and directories are
// being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run builds every discovered shader once, then rebuilds changed shaders
// until ctx is cancelled. It closes the underlying fsnotify watcher on
// return. Cancellation is not an error.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.logger.Error("closing watcher", "error", err)
		}
	}()

	if err := w.initialBuild(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	dirs, err := w.watchDirs(ctx)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Debug("watching directory", "dir", dir)
	}
	close(w.ready)

	ticker := time.NewTicker(w.opts.Debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) initialBuild(ctx context.Context) error {
	files, err := runner.Discover(ctx, w.opts.Build)
	if err != nil {
		return fmt.Errorf("discover shaders: %w", err)
	}

	result, err := w.runner.RunFiles(ctx, files)
	if err != nil {
		return fmt.Errorf("initial build: %w", err)
	}

	for _, outcome := range result.Files {
		w.remember(ctx, outcome.Path)
		w.report(outcome)
	}
	w.logger.Info("initial build finished", "files", len(result.Files))
	return nil
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addDir(event.Name)
			return
		}
	case event.Has(fsnotify.Write):
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(w.fingerprints, event.Name)
		delete(w.pending, event.Name)
		return
	default:
		return
	}

	if !runner.Selects(w.opts.Build, event.Name) {
		return
	}
	w.pending[event.Name] = time.Now()
}

// flush rebuilds paths that have been quiet for the debounce window.
func (w *Watcher) flush(ctx context.Context) {
	now := time.Now()
	var settled []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.opts.Debounce {
			settled = append(settled, path)
			delete(w.pending, path)
		}
	}
	slices.Sort(settled)

	for _, path := range settled {
		if ctx.Err() != nil {
			return
		}
		w.rebuild(ctx, path)
	}
}

func (w *Watcher) rebuild(ctx context.Context, path string) {
	if fp, ok := w.fingerprints[path]; ok {
		changed, err := fsutil.Changed(ctx, fp)
		if err == nil && !changed {
			w.logger.Debug("content unchanged, skipping", "path", path)
			return
		}
	}

	if !w.remember(ctx, path) {
		return
	}

	outcome := w.runner.BuildFile(ctx, path)
	if outcome.Error != nil {
		w.logger.Error("rebuild failed", "path", path, "error", outcome.Error)
	} else {
		w.logger.Info("rebuilt", "path", path, "stages", len(outcome.Files))
	}
	w.report(outcome)
}

// remember records the fingerprint of path and reports whether the file
// could be read.
func (w *Watcher) remember(ctx context.Context, path string) bool {
	_, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		delete(w.fingerprints, path)
		if !errors.Is(err, fsutil.ErrNotFound) {
			w.logger.Warn("cannot fingerprint shader", "path", path, "error", err)
		}
		return false
	}
	w.fingerprints[path] = info
	return true
}

func (w *Watcher) report(outcome runner.FileOutcome) {
	if w.opts.OnBuild != nil {
		w.opts.OnBuild(outcome)
	}
}

func (w *Watcher) addDir(dir string) {
	if w.skipDir(dir) {
		return
	}
	if err := w.fsw.Add(dir); err != nil {
		w.logger.Warn("cannot watch directory", "dir", dir, "error", err)
		return
	}
	w.logger.Debug("watching directory", "dir", dir)
}

func (w *Watcher) skipDir(dir string) bool {
	return strings.HasPrefix(filepath.Base(dir), ".") || runner.Excludes(w.opts.Build, dir)
}

// watchDirs lists the directories below the inputs. fsnotify is not
// recursive, so every directory is watched on its own.
func (w *Watcher) watchDirs(ctx context.Context) ([]string, error) {
	roots, err := runner.Roots(w.opts.Build)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var dirs []string
	add := func(dir string) {
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(filepath.Dir(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if walkErr != nil {
				return nil //nolint:nilerr // Unreadable directories are not watched.
			}
			if !entry.IsDir() {
				return nil
			}
			if path != root && w.skipDir(path) {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk directory %s: %w", root, err)
		}
	}

	slices.Sort(dirs)
	return dirs, nil
}
