package form

import (
	"sync"
	"time"
)

// saveScheduler owns the single pending autosave timer for a session. Only
// one timer exists at a time: scheduling cancels any pending one first, so
// the save fires on the trailing edge of a burst of edits.
type saveScheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	stopped bool
}

func newSaveScheduler(delay time.Duration) *saveScheduler {
	return &saveScheduler{delay: delay}
}

// Schedule arms the timer to run fn after the delay, cancelling any pending
// run. A stopped scheduler refuses new work.
func (s *saveScheduler) Schedule(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}

	s.timer = time.AfterFunc(s.delay, fn)
}

// Cancel drops the pending run, if any, without stopping the scheduler.
func (s *saveScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Stop cancels the pending run and prevents any future scheduling. Called on
// session teardown so a stray save cannot fire into a closed session.
func (s *saveScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
