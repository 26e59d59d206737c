package scripting

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"rama/internal/logging"
)

// Watcher queues script files that changed on disk. The fsnotify goroutine
// only enqueues; reloading happens when the frame loop drains the queue.
type Watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup

	mu      sync.Mutex
	pending []string
}

// NewWatcher watches dir for changes to .lua files.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{fs: fsw, done: make(chan struct{})}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(e.Name), ".lua") {
				continue
			}
			w.enqueue(e.Name)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Error("script watcher: %v", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) enqueue(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	// editors often write a file several times per save
	if !slices.Contains(w.pending, path) {
		w.pending = append(w.pending, path)
	}
}

// Pending drains the queue of changed files in first-change order.
func (w *Watcher) Pending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.pending
	w.pending = nil
	return out
}

// Close stops watching and waits for the event goroutine to exit.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}
