package sheet

import (
	"sort"
	"time"
)

// Timer is a pending callback registered with a Scheduler.
type Timer struct {
	at      time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
	sched   *Scheduler
}

// Stop cancels the timer. It reports whether the call prevented the callback
// from running. Stopping a nil, fired or already stopped timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.sched.remove(t)
	return true
}

// Scheduler is a frame-driven timer queue. It owns the only clock a sheet
// reads: time moves forward exclusively through Advance, which the sheet calls
// from Update. Callbacks run synchronously on the caller's goroutine.
//
// A timer created while Advance is firing callbacks never fires within the
// same Advance, so a zero delay means "next tick".
type Scheduler struct {
	now    time.Duration
	timers []*Timer
	due    []*Timer
	seq    uint64
}

// NewScheduler returns a scheduler whose clock starts at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// After schedules fn to run once d has elapsed. Negative delays are treated
// as zero.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{at: s.now + d, seq: s.seq, fn: fn, sched: s}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d and fires every timer that was
// pending before the call and is now due, ordered by due time and then by
// creation order.
func (s *Scheduler) Advance(d time.Duration) {
	if d > 0 {
		s.now += d
	}

	s.due = s.due[:0]
	for _, t := range s.timers {
		if t.at <= s.now {
			s.due = append(s.due, t)
		}
	}
	if len(s.due) == 0 {
		return
	}
	sort.Slice(s.due, func(i, j int) bool {
		if s.due[i].at != s.due[j].at {
			return s.due[i].at < s.due[j].at
		}
		return s.due[i].seq < s.due[j].seq
	})

	for _, t := range s.due {
		// An earlier callback in this batch may have stopped it.
		if t.stopped {
			continue
		}
		t.fired = true
		s.remove(t)
		t.fn()
	}
	clear(s.due)
	s.due = s.due[:0]
}

// StopAll cancels every pending timer.
func (s *Scheduler) StopAll() {
	for _, t := range s.timers {
		t.stopped = true
	}
	clear(s.timers)
	s.timers = s.timers[:0]
}

func (s *Scheduler) remove(t *Timer) {
	for i := range s.timers {
		if s.timers[i] == t {
			copy(s.timers[i:], s.timers[i+1:])
			s.timers[len(s.timers)-1] = nil
			s.timers = s.timers[:len(s.timers)-1]
			return
		}
	}
}
