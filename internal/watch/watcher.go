// Package watch reloads the project config whenever it changes on disk.
package watch

import (
	"errors"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/minicodemonkey/sfxgen/internal/config"
)

// Event represents a config change.
type Event struct {
	Config *config.Config
	Error  error
}

// Watcher watches a .sfxgen.yaml file for changes and sends events.
type Watcher struct {
	path       string
	watcher    *fsnotify.Watcher
	events     chan Event
	done       chan struct{}
	mu         sync.Mutex
	running    bool
	lastConfig *config.Config
}

// NewWatcher creates a new Watcher for the given config file path.
func NewWatcher(path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:    path,
		watcher: fsWatcher,
		events:  make(chan Event, 10),
		done:    make(chan struct{}),
	}

	return w, nil
}

// Start begins watching. The first event carries the current config.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory so editors that replace the file are still seen
	// and a config created after start is picked up.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.handleFileChange()

	go w.processEvents()

	return nil
}

// Stop stops watching the config file.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)
	w.watcher.Close()
}

// Events returns the channel for receiving config change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

func (w *Watcher) processEvents() {
	defer close(w.events)
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.handleFileChange()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(Event{Error: err})
		}
	}
}

// handleFileChange loads the config and sends an event if it changed.
// A removed file falls back to defaults.
func (w *Watcher) handleFileChange() {
	cfg, err := config.LoadFile(w.path)
	if err != nil {
		w.send(Event{Error: err})
		return
	}

	if w.lastConfig != nil && reflect.DeepEqual(w.lastConfig, cfg) {
		return
	}
	w.lastConfig = cfg
	w.send(Event{Config: cfg})
}

func (w *Watcher) send(e Event) {
	select {
	case w.events <- e:
	case <-w.done:
	}
}
