package levels

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce drops repeated events for the same file inside this window.
// Editors commonly emit several writes per save.
const debounce = 100 * time.Millisecond

// Watcher reports changes to level files.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string // Changed file paths
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	onlyFor string // When set, only events for this file are delivered
}

// NewWatcher watches the directories for level file changes.
func NewWatcher(dirs ...string) (*Watcher, error) {
	return newWatcher("", dirs...)
}

// WatchFile watches a single level file. The parent directory is watched
// so that editors that replace the file on save are still observed.
func WatchFile(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return newWatcher(abs, filepath.Dir(abs))
}

func newWatcher(only string, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		onlyFor: only,
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.wants(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default: // Drop if nobody is reading
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) wants(name string) bool {
	if w.onlyFor != "" {
		abs, err := filepath.Abs(name)
		return err == nil && abs == w.onlyFor
	}
	return IsLevelFile(name)
}
