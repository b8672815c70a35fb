package kiosk

import "time"

// DefaultRefreshInterval matches the reference dashboard cadence.
const DefaultRefreshInterval = 30 * time.Second

// RefreshScheduler re-runs a dashboard refresh callback on a fixed interval
// while enabled. Start and Stop are idempotent, and Stop tears the interval
// down deterministically so no timer outlives the view that owns it.
type RefreshScheduler struct {
	interval time.Duration
	refresh  func()
	task     ScheduledTask
}

func NewRefreshScheduler(interval time.Duration, refresh func()) *RefreshScheduler {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &RefreshScheduler{interval: interval, refresh: refresh}
}

// Start enables the recurring refresh; enabling twice is a no-op.
func (rs *RefreshScheduler) Start() bool {
	return rs.task.StartEvery(rs.interval, rs.refresh)
}

// Stop cancels the interval; stopping an idle scheduler is a no-op.
func (rs *RefreshScheduler) Stop() bool {
	return rs.task.Cancel()
}

func (rs *RefreshScheduler) Enabled() bool {
	return rs.task.Active()
}
