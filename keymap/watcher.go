package keymap

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher errors
var (
	ErrWatcherClosed   = errors.New("keymap watcher is closed")
	ErrAlreadyWatching = errors.New("path is already watched")
	ErrNotWatching     = errors.New("path is not watched")
)

// Op describes what happened to a watched keymap file.
type Op uint8

const (
	// OpCreate indicates a keymap file was created.
	OpCreate Op = 1 << iota

	// OpWrite indicates a keymap file was modified.
	OpWrite

	// OpRemove indicates a keymap file was removed.
	OpRemove

	// OpRename indicates a keymap file was renamed.
	OpRename
)

// Event is a change notification for a keymap file.
type Event struct {
	// Path is the file that changed.
	Path string

	// Op is what happened.
	Op Op
}

// Watcher reports changes to keymap files so callers can reload and
// rebind at runtime. Only files with keymap extensions (.json, .yaml,
// .yml, .toml) produce events.
//
// The watcher never touches a registry itself: recompiling and
// rebinding stay under the caller's single-owner control.
type Watcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	paths   map[string]bool
	events  chan Event
	errors  chan error
	closeCh chan struct{}
	wg      sync.WaitGroup
	closed  bool
}

// NewWatcher creates a watcher. Callers must Close it when done.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		paths:   make(map[string]bool),
		events:  make(chan Event, 16),
		errors:  make(chan error, 16),
		closeCh: make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch starts watching a keymap file or a directory of keymap files.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absPath); err != nil {
		return err
	}
	if w.paths[absPath] {
		return ErrAlreadyWatching
	}

	if err := w.watcher.Add(absPath); err != nil {
		return err
	}
	w.paths[absPath] = true
	return nil
}

// Unwatch stops watching a path.
func (w *Watcher) Unwatch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if !w.paths[absPath] {
		return ErrNotWatching
	}

	if err := w.watcher.Remove(absPath); err != nil {
		return err
	}
	delete(w.paths, absPath)
	return nil
}

// Events returns the event channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes the event and error channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()

	close(w.events)
	close(w.errors)
	return err
}

// processLoop converts fsnotify events into keymap events.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// handleFSEvent filters and forwards one fsnotify event.
func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}
	if !isKeymapFile(fsEvent.Name) {
		return
	}

	select {
	case w.events <- Event{Path: fsEvent.Name, Op: op}:
	default:
		// Channel full, drop the event. The caller reloads the whole
		// file on any event, so a dropped duplicate is harmless.
	}
}

// convertOp converts fsnotify.Op to keymap.Op. Chmod is ignored.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}

// isKeymapFile reports whether the path has a keymap file extension.
func isKeymapFile(path string) bool {
	_, err := FormatForPath(path)
	return err == nil
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
