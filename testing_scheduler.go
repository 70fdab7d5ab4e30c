package wsguard

import (
	"sync"
	"time"
)

// manualScheduler queues scheduled callbacks and runs them only when the
// test says so, keeping retry timing fully deterministic.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*manualTask
}

type manualTask struct {
	s       *manualScheduler
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{}
}

func (s *manualScheduler) Schedule(d time.Duration, fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := &manualTask{s: s, delay: d, fn: fn}
	s.pending = append(s.pending, task)
	return task
}

// Pending returns how many scheduled tasks have neither fired nor been
// stopped.
func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// LastDelay returns the delay of the most recently scheduled task.
func (s *manualScheduler) LastDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return 0
	}
	return s.pending[len(s.pending)-1].delay
}

// Fire runs the oldest live task, if any, and reports whether one ran. The
// callback executes outside the scheduler lock since it usually schedules
// the next task.
func (s *manualScheduler) Fire() bool {
	s.mu.Lock()
	var task *manualTask
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			task = t
			break
		}
	}
	if task == nil {
		s.mu.Unlock()
		return false
	}
	task.fired = true
	s.mu.Unlock()

	task.fn()
	return true
}

// FireAll keeps firing until no live tasks remain.
func (s *manualScheduler) FireAll() int {
	n := 0
	for s.Fire() {
		n++
	}
	return n
}

func (t *manualTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
