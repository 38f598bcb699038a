// Package watch reports external modifications of a card file.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events an editor's save produces.
const DefaultDebounce = 150 * time.Millisecond

// Event says the watched file was written, created, or renamed into place.
type Event struct {
	Path    string
	Removed bool
}

// Watcher watches a single file. It watches the parent directory so that
// editors which save by rename are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      *zap.Logger

	events chan Event
	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once
}

// New starts watching path.
func New(path string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		log:      log.Named("watch"),
		events:   make(chan Event, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go w.run()
	w.log.Debug("watching", zap.String("path", abs))
	return w, nil
}

// Events delivers one Event per settled burst of changes. It is closed
// when the watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	defer close(w.events)

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		removed bool
	)
	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			switch {
			case ev.Op&(fsnotify.Write|fsnotify.Create) != 0:
				removed = false
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				removed = true
			default:
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.log.Debug("file changed", zap.String("path", w.path), zap.Bool("removed", removed))
			select {
			case w.events <- Event{Path: w.path, Removed: removed}:
			default:
				// a pending event already covers this one
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher error", zap.Error(err))
		}
	}
}

// Close stops the watcher and waits for it to finish.
func (w *Watcher) Close() error {
	w.once.Do(func() { close(w.stopCh) })
	<-w.doneCh
	return w.watcher.Close()
}
