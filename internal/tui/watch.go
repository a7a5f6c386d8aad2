package tui

import (
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"annomap/internal/applog"
)

// fileChangedMsg reports that the watched file was written or replaced.
type fileChangedMsg struct{ path string }

// watchErrMsg carries a watcher error to the status line.
type watchErrMsg struct{ err error }

// watcher follows one file. It watches the parent directory so editors
// that replace the file on save are still seen.
type watcher struct {
	w *fsnotify.Watcher

	mu   sync.Mutex
	path string
	dir  string
}

func newWatcher() (*watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &watcher{w: w}, nil
}

// follow switches the watch to path.
func (w *watcher) follow(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	w.mu.Lock()
	defer w.mu.Unlock()
	if dir != w.dir {
		if w.dir != "" {
			_ = w.w.Remove(w.dir)
		}
		if err := w.w.Add(dir); err != nil {
			w.dir, w.path = "", ""
			return err
		}
		w.dir = dir
	}
	w.path = abs
	return nil
}

func (w *watcher) current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// next blocks until the followed file changes and returns it as a message.
func (w *watcher) next() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.w.Events:
				if !ok {
					return nil
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if p := w.current(); p != "" && filepath.Clean(ev.Name) == p {
					applog.Logger().Debug("file changed", "path", p, "op", ev.Op.String())
					return fileChangedMsg{path: p}
				}
			case err, ok := <-w.w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (w *watcher) Close() error { return w.w.Close() }
