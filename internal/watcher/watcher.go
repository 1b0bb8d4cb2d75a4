package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"ims-viewer/internal/logger"
)

// FileWatcher watches a single data file and invokes a callback, debounced,
// when it changes. Watching the parent directory instead of the file itself
// survives the rename-and-replace pattern most exporters use.
type FileWatcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce *Debouncer
	done     chan struct{}
}

// Watch starts watching path and calls onChange (from a background
// goroutine) after changes settle.
func Watch(path string, debounce time.Duration, onChange func()) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watcher: %w", err)
	}

	w := &FileWatcher{
		fsw:      fsw,
		path:     abs,
		debounce: NewDebouncer(debounce),
		done:     make(chan struct{}),
	}
	go w.loop(onChange)
	return w, nil
}

func (w *FileWatcher) loop(onChange func()) {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debugf("watcher: %s %s", ev.Op, ev.Name)
			w.debounce.Trigger(onChange)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warnf("watcher: %v", err)
		}
	}
}

// Close stops the watcher and any pending callback.
func (w *FileWatcher) Close() error {
	close(w.done)
	w.debounce.Stop()
	return w.fsw.Close()
}
