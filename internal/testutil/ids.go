package testutil

import (
	"sync"
	"time"
)

// SequenceIDs hands out record identities 1, 2, 3, ... for tests.
//
// Unlike provider.ClockIDGenerator it ignores wall time, so the same scenario
// always produces the same ids. Reset rewinds it for reuse.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequenceIDs struct {
	mu   sync.Mutex
	last int64
}

// NewSequenceIDs creates a generator whose first id is 1.
func NewSequenceIDs() *SequenceIDs {
	return &SequenceIDs{}
}

// NewSequenceIDsAfter creates a generator whose first id is start+1.
func NewSequenceIDsAfter(start int64) *SequenceIDs {
	return &SequenceIDs{last: start}
}

// Next returns the next id.
func (s *SequenceIDs) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}

// Current returns the last id issued without advancing.
func (s *SequenceIDs) Current() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Reset rewinds the generator; the next id is 1 again.
func (s *SequenceIDs) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = 0
}

// ManualClock is a wall clock that only moves when told to.
//
// Its Now method value plugs into anything that takes a func() time.Time.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
