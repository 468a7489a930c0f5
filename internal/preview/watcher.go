package preview

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors the data tree and broadcasts a reload after changes
// settle. Editors and the pipeline both write in bursts, so events are
// debounced rather than forwarded one by one.
type Watcher struct {
	fsw      *fsnotify.Watcher
	hub      *Hub
	log      *zap.SugaredLogger
	debounce time.Duration
}

func NewWatcher(hub *Hub, log *zap.SugaredLogger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:      fsw,
		hub:      hub,
		log:      log,
		debounce: 300 * time.Millisecond,
	}, nil
}

// Watch registers root and all of its subdirectories.
func (w *Watcher) Watch(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.fsw.Add(path); err != nil {
				return err
			}
		}
		return nil
	})
}

// Run pumps events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	// The timer is armed by events and fires once they stop.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// New subdirectories need their own watch.
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.fsw.Add(ev.Name)
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnf("watcher: %v", err)

		case <-timer.C:
			w.log.Debug("data tree changed, broadcasting reload")
			w.hub.Broadcast()
		}
	}
}
