// internal/kbc/timer.go
package kbc

import (
	"sync"
	"time"
)

// Timer is the stock PollTimer: a one-shot reschedulable timer whose
// Cancel waits out any callback already running.
type Timer struct {
	fn func()

	mu sync.Mutex // guards t
	t  *time.Timer

	// runMu is held for the duration of each callback so Cancel can
	// block until an in-flight callback has finished.
	runMu sync.Mutex
}

func NewTimer(fn func()) *Timer {
	return &Timer{fn: fn}
}

// ScheduleAfter arms the timer, replacing any pending schedule.
func (tm *Timer) ScheduleAfter(d time.Duration) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.t != nil {
		tm.t.Stop()
	}
	tm.t = time.AfterFunc(d, func() {
		tm.runMu.Lock()
		defer tm.runMu.Unlock()
		tm.fn()
	})
}

// Cancel stops any pending schedule and does not return while a fired
// callback is still running.
func (tm *Timer) Cancel() {
	tm.mu.Lock()
	t := tm.t
	tm.t = nil
	tm.mu.Unlock()

	if t != nil {
		t.Stop()
	}

	// Taking runMu blocks until the callback releases it.
	tm.runMu.Lock()
	tm.runMu.Unlock()
}
