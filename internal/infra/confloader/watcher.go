package confloader

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ChangeOp classifies a change to a watched file.
type ChangeOp int

const (
	// Modified means the file was written or (re)created.
	Modified ChangeOp = iota
	// Removed means the file was deleted or renamed away.
	Removed
)

func (op ChangeOp) String() string {
	if op == Removed {
		return "removed"
	}
	return "modified"
}

// Change describes one event on a watched file.
type Change struct {
	Path string
	Op   ChangeOp
}

// Watcher reports changes to configuration files.
//
// The parent directory of each file is watched so that editors which save
// by renaming a temporary file over the original are still seen. Events
// for other files in the same directory are dropped.
type Watcher struct {
	fs       *fsnotify.Watcher
	log      *slog.Logger
	mu       sync.RWMutex
	handlers []func(Change)
	files    map[string]struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the watcher.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.log = logger
	}
}

// NewWatcher creates a Watcher. Nothing is watched until Watch is called.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:    fw,
		log:   slog.Default(),
		files: make(map[string]struct{}),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds a file. Its directory must exist; the file itself may not.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(abs)
	if err := w.fs.Add(dir); err != nil {
		w.log.Error("cannot watch configuration directory", "dir", dir, "error", err)
		return err
	}

	w.mu.Lock()
	w.files[abs] = struct{}{}
	w.mu.Unlock()

	w.log.Debug("watching configuration file", "file", abs)
	return nil
}

// OnChange registers fn for every change to a watched file. Handlers run
// on the watcher goroutine in registration order.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, fn)
}

// Start delivers changes until Stop is called.
func (w *Watcher) Start() {
	w.log.Debug("configuration watcher started")
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if c, ok := w.classify(ev); ok {
				w.log.Debug("configuration file changed", "file", c.Path, "op", c.Op.String())
				w.dispatch(c)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error("configuration watcher error", "error", err)
		}
	}
}

// StartAsync runs Start in a new goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

// Stop ends the watch. Later calls return nil.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		if err = w.fs.Close(); err != nil {
			w.log.Error("cannot close configuration watcher", "error", err)
			return
		}
		w.log.Debug("configuration watcher stopped")
	})
	return err
}

// classify maps an fsnotify event on a watched file to a Change. Chmod
// events and events on other files are dropped.
func (w *Watcher) classify(ev fsnotify.Event) (Change, bool) {
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return Change{}, false
	}
	w.mu.RLock()
	_, watched := w.files[abs]
	w.mu.RUnlock()
	if !watched {
		return Change{}, false
	}

	switch {
	case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
		return Change{Path: abs, Op: Modified}, true
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return Change{Path: abs, Op: Removed}, true
	default:
		return Change{}, false
	}
}

func (w *Watcher) dispatch(c Change) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, fn := range w.handlers {
		fn(c)
	}
}
