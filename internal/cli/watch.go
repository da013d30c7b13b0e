package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/mdxlint/internal/logging"
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/fsutil"
	"github.com/yaklabco/mdxlint/pkg/langdetect"
	"github.com/yaklabco/mdxlint/pkg/runner"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// lintFunc runs and reports a single lint pass.
type lintFunc func(ctx context.Context) (*runner.Result, error)

type watcher struct {
	fsw        *fsnotify.Watcher
	lint       lintFunc
	logger     *log.Logger
	workDir    string
	extensions []string
	debounce   time.Duration

	// files restricts events to explicitly named files. Empty means every
	// document under the watched directories.
	files map[string]struct{}

	// snapshots holds the state of each file as last linted.
	snapshots map[string]*fsutil.FileInfo
	pending   map[string]struct{}
}

// watch lints once, then again after every relevant change below the paths
// of opts, until ctx is cancelled. Lint failures are logged rather than
// ending the session.
func watch(ctx context.Context, opts runner.Options, lint lintFunc, logger *log.Logger) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = config.DefaultExtensions()
	}

	w := &watcher{
		fsw:        fsw,
		lint:       lint,
		logger:     logger,
		workDir:    opts.WorkingDir,
		extensions: make([]string, 0, len(extensions)),
		debounce:   watchDebounce,
		files:      make(map[string]struct{}),
		snapshots:  make(map[string]*fsutil.FileInfo),
		pending:    make(map[string]struct{}),
	}
	for _, ext := range extensions {
		w.extensions = append(w.extensions, strings.ToLower(ext))
	}

	return w.run(logging.WithLogger(ctx, logger), opts.Paths)
}

func (w *watcher) run(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	for _, path := range paths {
		if err := w.addRoot(path); err != nil {
			return err
		}
	}

	w.logger.Info("watching for changes", logging.FieldPaths, paths)
	w.lintAndRecord(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.FieldError, err)

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(event) {
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			if w.changed(ctx) {
				w.logger.Info("change detected", logging.FieldFiles, len(w.pending))
				w.lintAndRecord(ctx)
			}
			clear(w.pending)
		}
	}
}

// addRoot watches a directory tree, or the directory of a single file.
func (w *watcher) addRoot(path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.workDir, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	if !info.IsDir() {
		w.files[path] = struct{}{}
		if err := w.fsw.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	}

	return w.addTree(path)
}

// addTree watches root and every directory below it that discovery would
// walk.
func (w *watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return fs.SkipDir
			}
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && w.skipDir(path) {
			return fs.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *watcher) skipDir(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return false
	}
	return langdetect.IsVendored(filepath.ToSlash(rel) + "/")
}

// handle records a relevant event and reports whether it should restart the
// debounce timer.
func (w *watcher) handle(event fsnotify.Event) bool {
	path := filepath.Clean(event.Name)

	if event.Has(fsnotify.Create) && len(w.files) == 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() && !w.skipDir(path) {
			if err := w.addTree(path); err != nil {
				w.logger.Warn("cannot watch new directory", logging.FieldPath, path, logging.FieldError, err)
			}
			return false
		}
	}

	if event.Op == fsnotify.Chmod {
		return false
	}

	if len(w.files) > 0 {
		if _, named := w.files[path]; !named {
			return false
		}
	} else if !slices.Contains(w.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}

	w.pending[path] = struct{}{}
	return true
}

// changed reports whether any pending path differs from its last linted
// state. Saves that rewrite identical bytes do not count.
func (w *watcher) changed(ctx context.Context) bool {
	for path := range w.pending {
		snapshot, ok := w.snapshots[path]
		if !ok {
			return true
		}

		changed, err := fsutil.Changed(ctx, snapshot)
		if err != nil || changed {
			return true
		}
	}
	return false
}

func (w *watcher) lintAndRecord(ctx context.Context) {
	result, err := w.lint(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("lint failed", logging.FieldError, err)
		}
		return
	}

	clear(w.snapshots)
	for _, outcome := range result.Files {
		if outcome.Result != nil && outcome.Result.Info != nil {
			w.snapshots[filepath.Clean(outcome.Path)] = outcome.Result.Info
		}
	}
}
