// Package watch reports changes to individual files using fsnotify.
// Parent directories are watched instead of the files themselves, so editors
// that save by rename-and-replace are still observed.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"groundhog/internal/errors"
	"groundhog/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of events for the same file.
const DefaultDebounce = 100 * time.Millisecond

// Change is a settled modification of a watched file.
type Change struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors a set of files for changes
type Watcher struct {
	// Files being watched, keyed by cleaned absolute path
	files map[string]struct{}

	// Channel delivering settled changes
	changes chan Change

	// Channel to signal stop
	stopChan chan struct{}

	// Closed when the event loop exits
	done chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Quiet period before a change is delivered
	debounce time.Duration

	// Lock for running state and the files set
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool

	// Set once Stop has released the fsnotify watcher
	closed bool
}

// New creates a file watcher.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewInitializationFailed("file watcher", err)
	}

	return &Watcher{
		files:     make(map[string]struct{}),
		changes:   make(chan Change, 10),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
		debounce:  DefaultDebounce,
	}, nil
}

// SetDebounce changes the quiet period. Must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// AddFile starts watching path. The file itself need not exist yet, but its
// directory must.
func (w *Watcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.FromIOError(path, err)
	}
	dir := filepath.Dir(abs)

	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.FromIOError(dir, err)
	}

	w.mutex.Lock()
	w.files[abs] = struct{}{}
	w.mutex.Unlock()

	log.Subsystem("watch").With(log.F("file", abs)).Debug("Watching file")
	return nil
}

// Changes returns the channel that delivers settled changes.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

func (w *Watcher) watched(name string) (string, bool) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", false
	}
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	_, ok := w.files[abs]
	return abs, ok
}

// Start begins delivering changes.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return errors.NewUnexpectedState("watcher stopped")
	}
	if w.running {
		w.mutex.Unlock()
		return errors.NewUnexpectedState("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	stop, done := w.stopChan, w.done
	w.mutex.Unlock()

	go func() {
		defer close(done)
		w.loop(stop)
	}()
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}) {
	logger := log.Subsystem("watch")

	pending := make(map[string]fsnotify.Op)
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			path, ok := w.watched(event.Name)
			if !ok {
				continue
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
				!event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Remove) {
				continue
			}
			pending[path] |= event.Op
			timer.Reset(w.debounce)

		case <-timer.C:
			now := time.Now()
			for path, op := range pending {
				select {
				case w.changes <- Change{Path: path, Op: op, Timestamp: now}:
				default:
					logger.With(log.F("file", path)).Warn("Change channel is full, dropped event")
				}
			}
			pending = make(map[string]fsnotify.Op)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.WithError(err).Error("fsnotify watcher error")

		case <-stop:
			timer.Stop()
			return
		}
	}
}

// Stop halts the watcher, releases the fsnotify watcher and closes the
// change channel. It also releases a watcher that was never started. A
// stopped watcher cannot be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return
	}
	w.closed = true
	wasRunning := w.running
	w.running = false
	if wasRunning {
		close(w.stopChan)
	}
	done := w.done
	w.mutex.Unlock()

	if wasRunning {
		<-done
	}
	if err := w.fsWatcher.Close(); err != nil {
		log.Subsystem("watch").WithError(err).Error("Error closing fsnotify watcher")
	}
	close(w.changes)
}
