package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period [Watch] waits for after the last
// change before it reports.
const DefaultDebounce = 200 * time.Millisecond

// Watch blocks until ctx is done, calling onChange once per burst of changes
// to document files under root.
//
// Every directory that discovery would walk is watched, including ones
// created later. Changes to skipped entries and to files with other
// extensions are ignored. Events are debounced by debounce (or
// [DefaultDebounce] when zero), so a save that touches several files results
// in a single call. onChange runs on the watching goroutine.
//
// Watch returns ctx.Err() on cancellation, or the first watcher error.
func Watch(ctx context.Context, root string, opts Options, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.logger()
	exts := opts.extensions()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := addTree(w, root); err != nil {
		return err
	}
	logger.Debug("watching", "root", root, "dirs", len(w.WatchList()))

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if skipPath(root, ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if err := addTree(w, ev.Name); err == nil && isWatched(w, ev.Name) {
					logger.Debug("watching new directory", "path", ev.Name)
					timer.Reset(debounce)
					continue
				}
			}
			if !slices.Contains(exts, filepath.Ext(ev.Name)) && !isWatched(w, ev.Name) {
				continue
			}
			logger.Debug("change", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", root, err)

		case <-timer.C:
			onChange()
		}
	}
}

// addTree watches dir and every non-skipped directory below it. Paths that
// are not directories are ignored.
func addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && Skip(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func isWatched(w *fsnotify.Watcher, path string) bool {
	return slices.Contains(w.WatchList(), path)
}

// skipPath reports whether any element of path below root is skipped.
func skipPath(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for dir := rel; dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		if Skip(filepath.Base(dir)) {
			return true
		}
	}
	return false
}
