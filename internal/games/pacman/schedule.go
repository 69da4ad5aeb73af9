package pacman

import (
	"slices"
	"sync"
	"time"
)

// Clock supplies wall-clock time to the engine.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. Hosts that simulate time, such as
// the headless runner, and tests drive the engine through it.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current simulated time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Token identifies a scheduled callback for cancellation.
// The zero Token is never issued.
type Token uint64

type entry struct {
	at    time.Time
	token Token
	fn    func(at time.Time)
}

// Scheduler is a cancellable list of deferred callbacks fired by RunDue.
// It is not safe for concurrent use; the session owns it.
type Scheduler struct {
	entries  []entry // ordered by at, then token
	last     Token
	paused   bool
	pausedAt time.Time
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to fire d after now and returns its token. fn
// receives its scheduled fire time, so a callback that reschedules itself
// from that time keeps a steady cadence however late RunDue is called.
func (s *Scheduler) After(now time.Time, d time.Duration, fn func(at time.Time)) Token {
	s.last++
	e := entry{at: now.Add(d), token: s.last, fn: fn}
	i, _ := slices.BinarySearchFunc(s.entries, e, compareEntries)
	s.entries = slices.Insert(s.entries, i, e)
	return e.token
}

func compareEntries(a, b entry) int {
	if c := a.at.Compare(b.at); c != 0 {
		return c
	}
	switch {
	case a.token < b.token:
		return -1
	case a.token > b.token:
		return 1
	default:
		return 0
	}
}

// Cancel removes a pending callback. Unknown or fired tokens are ignored.
func (s *Scheduler) Cancel(t Token) {
	if t == 0 {
		return
	}
	s.entries = slices.DeleteFunc(s.entries, func(e entry) bool { return e.token == t })
}

// CancelAll drops every pending callback.
func (s *Scheduler) CancelAll() {
	s.entries = s.entries[:0]
}

// Reset drops every pending callback and clears the paused state.
func (s *Scheduler) Reset() {
	s.CancelAll()
	s.paused = false
	s.pausedAt = time.Time{}
}

// pending returns the number of scheduled callbacks.
func (s *Scheduler) pending() int {
	return len(s.entries)
}

// scheduled reports whether t is still pending.
func (s *Scheduler) scheduled(t Token) bool {
	return slices.ContainsFunc(s.entries, func(e entry) bool { return e.token == t })
}

// RunDue fires, in order, every callback due at or before now, including
// callbacks scheduled by callbacks during this call. It returns the
// number fired. Nothing fires while paused.
func (s *Scheduler) RunDue(now time.Time) int {
	if s.paused {
		return 0
	}
	fired := 0
	for len(s.entries) > 0 && !s.entries[0].at.After(now) {
		e := s.entries[0]
		s.entries = slices.Delete(s.entries, 0, 1)
		e.fn(e.at)
		fired++
	}
	return fired
}

// Pause stops the scheduler's notion of time at now.
func (s *Scheduler) Pause(now time.Time) {
	if s.paused {
		return
	}
	s.paused = true
	s.pausedAt = now
}

// Resume shifts every pending callback by the paused span.
func (s *Scheduler) Resume(now time.Time) {
	if !s.paused {
		return
	}
	s.paused = false
	span := now.Sub(s.pausedAt)
	if span <= 0 {
		return
	}
	for i := range s.entries {
		s.entries[i].at = s.entries[i].at.Add(span)
	}
}

// Paused reports whether the scheduler is paused.
func (s *Scheduler) Paused() bool {
	return s.paused
}
