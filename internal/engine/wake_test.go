package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWakeWatcherDetectsClockJump(t *testing.T) {
	var calls atomic.Int32
	var lastGap atomic.Int64

	w := NewWakeWatcher(time.Second, 5*time.Second, func(gap time.Duration) {
		calls.Add(1)
		lastGap.Store(int64(gap))
	}, zap.NewNop())

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w.last = t0

	// Normal probe spacing: no wake.
	w.check(t0.Add(time.Second))
	if calls.Load() != 0 {
		t.Fatal("a normal probe interval should not report a wake")
	}

	// Slightly late probe (scheduler jitter): still no wake.
	w.check(t0.Add(3 * time.Second))
	if calls.Load() != 0 {
		t.Fatal("scheduler jitter should not report a wake")
	}

	// The clock jumped half an hour: the machine slept.
	w.check(t0.Add(3*time.Second + 30*time.Minute))
	if calls.Load() != 1 {
		t.Fatalf("onWake calls = %d, want 1", calls.Load())
	}
	wantGap := 30*time.Minute - time.Second
	if got := time.Duration(lastGap.Load()); got != wantGap {
		t.Errorf("gap = %v, want %v", got, wantGap)
	}

	// Probes settle back to normal afterwards.
	w.check(t0.Add(4*time.Second + 30*time.Minute))
	if calls.Load() != 1 {
		t.Error("a normal probe after the wake should not fire again")
	}
}

func TestWakeWatcherLifecycle(t *testing.T) {
	w := NewWakeWatcher(10*time.Millisecond, 5*time.Second, func(time.Duration) {}, zap.NewNop())

	// Stop before start is safe.
	w.Stop()

	w.Start()
	w.Start() // no-op
	w.Stop()
	w.Stop() // safe

	// Restartable.
	w.Start()
	w.Stop()
}
