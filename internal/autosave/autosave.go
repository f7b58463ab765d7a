// Package autosave runs a periodic save in an owned background goroutine.
package autosave

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = 5 * time.Minute

// SaveFunc writes the current state somewhere durable.
type SaveFunc func() error

// Saver calls a SaveFunc on a fixed interval until stopped. Failed saves are
// logged and the next tick fires as usual.
type Saver struct {
	save     SaveFunc
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func New(save SaveFunc, interval time.Duration, logger *zap.Logger) *Saver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Saver{
		save:     save,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the background loop. It returns immediately; calling it on
// a running Saver does nothing. The loop ends when ctx is canceled or Stop
// is called.
func (s *Saver) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.run(ctx, s.done)
	s.logger.Info("autosave started", zap.Duration("interval", s.interval))
}

// Stop cancels the loop, waits for it to exit and then saves one last time.
// It is safe to call more than once.
func (s *Saver) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	s.tick()
	s.logger.Info("autosave stopped")
}

// Running reports whether the loop is active.
func (s *Saver) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Saver) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Saver) tick() {
	if err := s.safeSave(); err != nil {
		s.logger.Error("autosave failed", zap.Error(err))
		return
	}
	s.logger.Debug("autosave completed")
}

func (s *Saver) safeSave() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("save panicked: %v", r)
		}
	}()
	return s.save()
}
