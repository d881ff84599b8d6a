package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/duskydesk/duskycc/internal/logger"
)

// Watcher reports coalesced change notifications for a set of files.
// It watches the parent directories so editors that replace files via
// rename-and-swap are still observed.
type Watcher struct {
	fsw     *fsnotify.Watcher
	events  chan struct{}
	done    chan struct{}
	once    sync.Once
	targets map[string]struct{}
}

// NewWatcher begins watching the given file paths. A burst of writes
// collapses into a single pending notification on Events.
func NewWatcher(paths ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:     fsw,
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		targets: make(map[string]struct{}, len(paths)),
	}
	dirs := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		clean := filepath.Clean(p)
		w.targets[clean] = struct{}{}
		dirs[filepath.Dir(clean)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			logger.Warn("Could not watch directory", "dir", dir, "error", err)
		}
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	// Closing events here lets consumers range over it and fall out on
	// Close instead of blocking forever.
	defer close(w.events)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if _, watched := w.targets[filepath.Clean(ev.Name)]; !watched {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			select {
			case w.events <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Config watcher error", "error", err)
		}
	}
}

// Events delivers change notifications. The channel is closed once
// Close stops the watcher, so ranging over it terminates cleanly.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}
