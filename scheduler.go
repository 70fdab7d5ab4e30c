package wsguard

import (
	"time"
)

type (
	// Task is a handle to a scheduled callback. Stop reports whether it
	// prevented the callback from running.
	Task interface {
		Stop() bool
	}

	// Scheduler defers a callback by a fixed delay. The supervisor's only
	// suspension point, the retry timer, goes through this abstraction so
	// tests can drive it without touching the wall clock.
	Scheduler interface {
		Schedule(d time.Duration, fn func()) Task
	}
)

type timeScheduler struct{}

// NewTimeScheduler returns the wall-clock scheduler used by default.
func NewTimeScheduler() Scheduler {
	return timeScheduler{}
}

func (timeScheduler) Schedule(d time.Duration, fn func()) Task {
	return timerTask{t: time.AfterFunc(d, fn)}
}

type timerTask struct {
	t *time.Timer
}

func (t timerTask) Stop() bool {
	return t.t.Stop()
}
