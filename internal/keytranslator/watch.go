package keytranslator

import (
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher holds a Translator that is hot-swapped whenever the backing
// keytab file on disk changes, so a long-running session picks up edits
// without a restart.
type Watcher struct {
	mu      sync.RWMutex
	current *Translator
	path    string
	fw      *fsnotify.Watcher
	onError func(error)
	closed  atomic.Bool
}

// WatchFile loads path immediately (falling back to Fallback() if it can't
// be parsed) and starts watching it for writes, reloading on each one.
func WatchFile(path string, onError func(error)) (*Watcher, error) {
	w := &Watcher{path: path, onError: onError}
	w.reload()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return w, err
	}
	w.fw = fw
	if err := fw.Add(path); err != nil {
		fw.Close()
		w.fw = nil
		return w, err
	}

	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reload()
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) reload() {
	t, _, err := LoadFile(w.path)
	if err != nil || t == nil || len(t.rules) == 0 {
		t = Fallback()
		if err != nil && w.onError != nil {
			w.onError(err)
		}
	}
	w.mu.Lock()
	w.current = t
	w.mu.Unlock()
}

// Current returns the live Translator.
func (w *Watcher) Current() *Translator {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	if w.closed.Swap(true) {
		return nil
	}
	if w.fw != nil {
		return w.fw.Close()
	}
	return nil
}
