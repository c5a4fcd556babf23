package localfs

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/logger"
)

// Watch signals on the returned channel whenever markdown files under the
// base path change. Events are debounced: a burst of writes, as editors
// and git checkouts produce, collapses into a single signal. The channel
// closes when ctx is cancelled.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := addRecursive(watcher, s.basePath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	events := make(chan struct{}, 1)
	go s.watchLoop(ctx, watcher, events)
	return events, nil
}

// watchLoop consumes raw fsnotify events and emits debounced signals.
func (s *Source) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, events chan<- struct{}) {
	defer watcher.Close()
	defer close(events)

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !s.relevant(ev) {
				continue
			}
			// New directories must be registered before their
			// contents can be seen. For plain files this is a no-op.
			if ev.Op.Has(fsnotify.Create) {
				maybeWatchDir(watcher, ev.Name)
			}
			logger.Debug("Corpus event: %s", ev)
			if timer == nil {
				timer = time.NewTimer(s.debounce)
				pending = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-pending:
					default:
					}
				}
				timer.Reset(s.debounce)
			}

		case <-pending:
			timer = nil
			pending = nil
			select {
			case events <- struct{}{}:
			default:
				// A signal is already queued; one is enough.
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// relevant filters the event stream down to corpus changes.
// Chmod-only events are noise; hidden paths are outside the corpus.
func (s *Source) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(ev.Name)
	if isHidden(name) {
		return false
	}
	// Directory events matter (moves, new subtrees); for files only
	// markdown counts.
	if isMarkdown(name) {
		return true
	}
	return filepath.Ext(name) == ""
}

// addRecursive registers the directory and every visible subdirectory.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if p != root && isHidden(entry.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}

// maybeWatchDir registers a newly created directory, recursively, so
// files dropped into it are seen. Failures only warn; the next full
// rebuild will pick the files up regardless.
func maybeWatchDir(watcher *fsnotify.Watcher, p string) {
	if err := addRecursive(watcher, p); err != nil {
		logger.Warn("Cannot watch %s: %v", p, err)
	}
}
