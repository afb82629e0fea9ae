// Package scheduler runs deferred one-shot jobs on in-process timers.
// Pending jobs live only in memory and are lost on restart.
package scheduler

import (
	"sync"
	"time"
)

// Scheduler abstracts timer creation so tests can fire jobs immediately.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules jobs on time.AfterFunc and tracks them so an
// orderly shutdown can drop everything still pending.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[*time.Timer]struct{}
	closed bool
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[*time.Timer]struct{})}
}

// AfterFunc runs fn once after d. The returned cancel stops the job if it
// has not started yet. After Stop, new jobs are silently dropped.
func (s *TimerScheduler) AfterFunc(d time.Duration, fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}

	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, timer)
		s.mu.Unlock()
		fn()
	})
	s.timers[timer] = struct{}{}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if timer.Stop() {
			delete(s.timers, timer)
		}
	}
}

// Stop cancels every pending job.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for timer := range s.timers {
		timer.Stop()
	}
	s.timers = make(map[*time.Timer]struct{})
}
