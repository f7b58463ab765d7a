// Package watch reloads the relationship file when another program edits it.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events a single save produces.
const DefaultDebounce = 200 * time.Millisecond

// Reloader re-reads a file and reports whether anything changed.
type Reloader interface {
	Reload(path string) (bool, error)
}

// Watcher watches the directory holding a file, so replacing the file by
// rename keeps being observed.
type Watcher struct {
	path     string
	target   Reloader
	debounce time.Duration
	logger   *zap.Logger

	fsw      *fsnotify.Watcher
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	started  bool
	mu       sync.Mutex
}

func New(path string, target Reloader, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	return &Watcher{
		path:     abs,
		target:   target,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Start begins watching. It returns an error if the directory cannot be
// watched; the event loop runs until ctx is canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}
	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	w.started = true
	go w.loop(ctx)
	w.logger.Info("watching relationship file", zap.String("path", w.path))
	return nil
}

// Stop ends the event loop and releases the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		started := w.started
		w.mu.Unlock()
		if started {
			<-w.stopped
		}
		w.fsw.Close()
	})
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.stopped)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (w *Watcher) reload() {
	changed, err := w.target.Reload(w.path)
	if err != nil {
		w.logger.Warn("reloading relationship file failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	if changed {
		w.logger.Info("relationship file changed on disk, reloaded", zap.String("path", w.path))
	}
}
