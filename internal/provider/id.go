package provider

import (
	"sync/atomic"
	"time"
)

// IDGenerator hands out record identities.
type IDGenerator interface {
	Next() int64
}

// ClockIDGenerator derives identities from wall-clock milliseconds.
//
// IDs are strictly increasing for the lifetime of the generator: when two
// calls land in the same millisecond, or the wall clock steps backwards, the
// next ID is last+1. Observe lets callers register identities that already
// exist (e.g. after loading persisted records) so they are never handed out.
//
// Thread-safety: safe for concurrent use (atomic compare-and-swap).
type ClockIDGenerator struct {
	last atomic.Int64
	now  func() time.Time
}

// NewClockIDGenerator creates a generator backed by time.Now.
func NewClockIDGenerator() *ClockIDGenerator {
	return &ClockIDGenerator{now: time.Now}
}

// NewClockIDGeneratorWith creates a generator backed by the given clock.
// Used by tests to pin or rewind time.
func NewClockIDGeneratorWith(now func() time.Time) *ClockIDGenerator {
	return &ClockIDGenerator{now: now}
}

// Next returns a fresh identity.
func (g *ClockIDGenerator) Next() int64 {
	for {
		last := g.last.Load()
		id := g.now().UnixMilli()
		if id <= last {
			id = last + 1
		}
		if g.last.CompareAndSwap(last, id) {
			return id
		}
	}
}

// Observe records an identity already in use; later calls to Next return
// values strictly greater than it.
func (g *ClockIDGenerator) Observe(id int64) {
	for {
		last := g.last.Load()
		if id <= last || g.last.CompareAndSwap(last, id) {
			return
		}
	}
}

// Last returns the most recently issued or observed identity.
func (g *ClockIDGenerator) Last() int64 {
	return g.last.Load()
}
