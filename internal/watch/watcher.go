package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docuscan/cli/internal/logger"
)

// Watcher re-runs an action after filesystem changes settle. Bursts of
// events collapse into a single run; a change arriving while a run is
// in flight marks the watcher dirty and schedules one follow-up run.
type Watcher struct {
	root     string
	excludes map[string]struct{}
	debounce time.Duration
	log      logger.Logger
	action   func(ctx context.Context)
}

func New(root string, excludePaths []string, debounce time.Duration, log logger.Logger, action func(ctx context.Context)) *Watcher {
	excludes := make(map[string]struct{}, len(excludePaths))
	for _, p := range excludePaths {
		excludes[p] = struct{}{}
	}
	return &Watcher{
		root:     root,
		excludes: excludes,
		debounce: debounce,
		log:      log,
		action:   action,
	}
}

// Run watches until ctx is cancelled. It returns only on cancellation
// or a watcher setup failure.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addRecursive(fw, w.root); err != nil {
		return err
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	running := false
	dirty := false
	done := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// new directories need their own watch
			if event.Op.Has(fsnotify.Create) {
				w.maybeAddDir(fw, event.Name)
			}
			resetTimer(timer, w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnf("watch error: %v\n", err)

		case <-timer.C:
			if running {
				dirty = true
				continue
			}
			running = true
			go func() {
				w.action(ctx)
				done <- struct{}{}
			}()

		case <-done:
			running = false
			if dirty {
				dirty = false
				resetTimer(timer, w.debounce)
			}
		}
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// relevant drops chmod-only noise and anything inside excluded paths.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return true
	}
	for _, part := range splitPath(rel) {
		if _, excluded := w.excludes[part]; excluded {
			return false
		}
	}
	return true
}

func (w *Watcher) maybeAddDir(fw *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addRecursive(fw, path); err != nil {
		w.log.Warnf("failed to watch %s: %v\n", path, err)
	}
}

// addRecursive registers path and all non-excluded subdirectories.
// A plain file path is a no-op.
func (w *Watcher) addRecursive(fw *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == w.root {
				return fmt.Errorf("failed to walk %s: %w", p, err)
			}
			w.log.Warnf("skipping %s: %v\n", p, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if _, excluded := w.excludes[d.Name()]; excluded && p != path {
			return fs.SkipDir
		}
		if err := fw.Add(p); err != nil {
			w.log.Warnf("failed to watch %s: %v\n", p, err)
		}
		return nil
	})
}

func splitPath(rel string) []string {
	return strings.Split(filepath.ToSlash(rel), "/")
}
