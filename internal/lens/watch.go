package lens

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sourcegraph/conc/panics"
)

// DebounceInterval collapses the burst of events an editor save produces.
const DebounceInterval = 100 * time.Millisecond

// RakeExt is the extension of watched files.
const RakeExt = ".rake"

// Watcher reports rake files under a directory tree as they change.
type Watcher struct {
	root     string
	debounce time.Duration
	onChange func(path string)
}

func NewWatcher(root string, onChange func(path string)) *Watcher {
	return &Watcher{
		root:     root,
		debounce: DebounceInterval,
		onChange: onChange,
	}
}

// Run calls onChange once for every existing rake file, then once per changed
// rake file after each burst of writes settles. It blocks until ctx is done.
// A panicking callback is logged and does not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	var initial []string
	err = filepath.WalkDir(w.root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != w.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return fsw.Add(p)
		}
		if filepath.Ext(p) == RakeExt {
			initial = append(initial, p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	for _, p := range initial {
		w.notify(ctx, p)
	}

	pending := map[string]struct{}{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "watcher error", "error", err)
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := fsw.Add(ev.Name); err != nil {
						slog.WarnContext(ctx, "failed to watch new directory", "path", ev.Name, "error", err)
					}
					continue
				}
			}
			if filepath.Ext(ev.Name) != RakeExt || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(w.debounce)
		case <-timer.C:
			for _, p := range slices.Sorted(maps.Keys(pending)) {
				w.notify(ctx, p)
			}
			clear(pending)
		}
	}
}

func (w *Watcher) notify(ctx context.Context, path string) {
	var catcher panics.Catcher
	catcher.Try(func() { w.onChange(path) })
	if r := catcher.Recovered(); r != nil {
		slog.ErrorContext(ctx, "lens callback panicked", "path", path, "error", r.AsError())
	}
}
