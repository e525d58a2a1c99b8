package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// WakeWatcher notices sleep/wake cycles by watching the wall clock. Timers
// do not fire while the machine sleeps, so when a periodic probe observes
// the clock advancing far more than its own interval, the machine must
// have been asleep in between.
type WakeWatcher struct {
	interval time.Duration
	slack    time.Duration
	onWake   func(gap time.Duration)
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	last   time.Time
	active bool
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewWakeWatcher probes every interval and calls onWake when the observed
// gap exceeds the interval by more than slack. onWake runs on the
// watcher's goroutine.
func NewWakeWatcher(interval, slack time.Duration, onWake func(gap time.Duration), logger *zap.Logger) *WakeWatcher {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &WakeWatcher{
		interval: interval,
		slack:    slack,
		onWake:   onWake,
		logger:   logger.Named("wake"),
		now:      time.Now,
	}
}

// Start begins probing. No-op when already started.
func (w *WakeWatcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.active {
		return
	}
	w.active = true
	w.last = w.now()
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.run(w.stopCh, w.doneCh)
}

// Stop cancels the probe. Safe to call when already stopped.
func (w *WakeWatcher) Stop() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		return
	}
	w.active = false
	close(w.stopCh)
	doneCh := w.doneCh
	w.mu.Unlock()

	<-doneCh
}

func (w *WakeWatcher) run(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			w.check(w.now())
		}
	}
}

// check compares the observed probe spacing against the expected interval.
func (w *WakeWatcher) check(current time.Time) {
	w.mu.Lock()
	gap := current.Sub(w.last) - w.interval
	w.last = current
	w.mu.Unlock()

	if gap > w.slack {
		w.logger.Info("wake from sleep detected", zap.Duration("gap", gap))
		w.onWake(gap)
	}
}
