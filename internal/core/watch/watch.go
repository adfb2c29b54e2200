// Package watch delivers file-creation notifications for a single vault
// folder through fsnotify.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Handler receives the path of a newly created regular file.
type Handler func(ctx context.Context, path string)

// Watcher watches one folder (non-recursive) for created files.
type Watcher struct {
	watcher *fsnotify.Watcher
	dir     string
	settle  time.Duration
	ignore  []string
	log     zerolog.Logger
}

// New creates a watcher on dir. settle is how long to wait after a create
// event before handing the file over, giving the producer time to finish
// writing. This is a debounce heuristic, not a completion signal; a slowly
// written large file can still be picked up early.
func New(dir string, settle time.Duration, ignore []string, log zerolog.Logger) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	return &Watcher{
		watcher: fw,
		dir:     dir,
		settle:  settle,
		ignore:  ignore,
		log:     log.With().Str("component", "watch").Str("dir", filepath.Base(dir)).Logger(),
	}, nil
}

// Run blocks until ctx is cancelled, invoking fn for each created file.
// Handler failures must be handled inside fn; the loop always continues.
func (w *Watcher) Run(ctx context.Context, fn Handler) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if w.shouldIgnore(event.Name) {
				continue
			}

			w.log.Debug().Str("path", event.Name).Msg("create event")

			// Let the producing process finish writing first.
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.settle):
			}

			info, err := os.Stat(event.Name)
			if err != nil || info.IsDir() {
				continue
			}

			fn(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("watcher error")
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.ignore {
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
