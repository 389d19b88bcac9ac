package config

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/vibetunnel/termcore/internal/telemetry"
)

// debounceDelay coalesces the burst of write events an editor typically
// produces for a single save into one reload, the way
// termsocket.Manager.scheduleBufferNotification debounces buffer-change
// notifications.
const debounceDelay = 150 * time.Millisecond

// Watcher republishes a new Config on Updates() whenever the watched file
// changes.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan Config

	timerMu sync.Mutex
	timer   *time.Timer

	done chan struct{}
}

// WatchFile starts watching path for changes and returns a Watcher whose
// Updates channel receives a freshly-loaded Config after each debounced
// change. Call Close to stop watching.
func WatchFile(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		watcher: fw,
		updates: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.scheduleReload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			telemetry.L().Warn("config watcher error", zap.Error(err))
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, func() {
		cfg, err := Load(w.path)
		if err != nil {
			telemetry.L().Warn("config reload failed", zap.Error(err))
			return
		}
		select {
		case w.updates <- cfg:
		default:
			// A reload is already pending delivery; drop the stale one
			// and queue this fresher config in its place.
			select {
			case <-w.updates:
			default:
			}
			select {
			case w.updates <- cfg:
			default:
			}
		}
	})
}

// Updates returns the channel that receives each freshly-reloaded Config.
func (w *Watcher) Updates() <-chan Config {
	return w.updates
}

// Close stops the underlying fsnotify watcher and any pending timer.
func (w *Watcher) Close() error {
	close(w.done)
	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timerMu.Unlock()
	return w.watcher.Close()
}
