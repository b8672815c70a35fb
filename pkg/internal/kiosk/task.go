package kiosk

import (
	"sync"
	"time"
)

// ScheduledTask is a single-slot cancellable callback: the undo countdown
// and the dashboard auto-refresh both run on it. At most one schedule is
// armed at a time; arming a one-shot replaces whatever was armed before,
// and cancellation is deterministic.
type ScheduledTask struct {
	mu   sync.Mutex
	stop chan struct{}
}

// StartAfter arms fn to run once after delay, replacing any armed schedule.
func (t *ScheduledTask) StartAfter(delay time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancelLocked()

	stop := make(chan struct{})
	t.stop = stop

	timer := time.NewTimer(delay)
	go func() {
		defer timer.Stop()
		select {
		case <-timer.C:
			t.mu.Lock()
			if t.stop == stop {
				t.stop = nil
			}
			t.mu.Unlock()
			fn()
		case <-stop:
		}
	}()
}

// StartEvery arms fn on a fixed interval. Enabling an already-armed task is
// a no-op and reports false.
func (t *ScheduledTask) StartEvery(interval time.Duration, fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		return false
	}

	stop := make(chan struct{})
	t.stop = stop

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-stop:
				return
			}
		}
	}()

	return true
}

// Cancel disarms the task. Cancelling an idle task is a no-op.
func (t *ScheduledTask) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelLocked()
}

func (t *ScheduledTask) cancelLocked() bool {
	if t.stop == nil {
		return false
	}
	close(t.stop)
	t.stop = nil
	return true
}

func (t *ScheduledTask) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}
