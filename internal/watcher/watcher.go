// Package watcher feeds file changes into the checking scheduler: it
// watches one document on disk and forwards its content on every write.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Sink receives document content whenever it changes. The checker service
// satisfies it; debouncing and staleness handling live there, not here.
type Sink interface {
	OnContentChanged(text string)
}

// Watcher monitors a single file and pushes its content into a Sink.
type Watcher struct {
	path string
	sink Sink
}

// New creates a Watcher for the given file.
func New(path string, sink Sink) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("watch target: %w", err)
	}
	return &Watcher{path: abs, sink: sink}, nil
}

// Run pushes the file's current content, then blocks forwarding every
// subsequent write until ctx is cancelled. The parent directory is watched
// rather than the file itself because editors commonly replace files on
// save, which drops a direct watch.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	if err := w.push(); err != nil {
		return fmt.Errorf("initial read: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Read failures are transient during editor save dances;
			// the next event retries.
			_ = w.push()
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

// push reads the file and hands its content to the sink.
func (w *Watcher) push() error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return err
	}
	w.sink.OnContentChanged(string(data))
	return nil
}
