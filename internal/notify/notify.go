// Package notify keeps the transient notifications ("toasts") shown after
// each user action. A notification is visible from the moment it is pushed
// until its kind's time-to-live elapses, then it is dropped.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes success from failure notifications.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Default lifetimes, per kind.
const (
	DefaultSuccessTTL = 2 * time.Second
	DefaultErrorTTL   = 4 * time.Second
)

// Notification is one transient message.
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TTL returns how long the notification stays visible.
func (n Notification) TTL() time.Duration {
	return n.ExpiresAt.Sub(n.CreatedAt)
}

// Remaining returns how much of the lifetime is left at now, never negative.
func (n Notification) Remaining(now time.Time) time.Duration {
	return max(n.ExpiresAt.Sub(now), 0)
}

// Option configures a Center.
type Option func(*Center)

// WithTTL sets the lifetime of notifications of the given kind.
func WithTTL(kind Kind, ttl time.Duration) Option {
	return func(c *Center) { c.ttl[kind] = ttl }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// WithIDs replaces the UUIDv7 id source.
func WithIDs(next func() string) Option {
	return func(c *Center) { c.nextID = next }
}

// Center holds live notifications, oldest first.
//
// Thread-safety: safe for concurrent use via internal mutex.
type Center struct {
	mu     sync.Mutex
	items  []Notification
	ttl    map[Kind]time.Duration
	now    func() time.Time
	nextID func() string
}

// NewCenter creates an empty center.
func NewCenter(opts ...Option) *Center {
	c := &Center{
		ttl: map[Kind]time.Duration{
			Success: DefaultSuccessTTL,
			Error:   DefaultErrorTTL,
		},
		now:    time.Now,
		nextID: func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Now returns the center's current time.
func (c *Center) Now() time.Time {
	return c.now()
}

// Notify pushes a notification and discards the result.
func (c *Center) Notify(kind Kind, message string) {
	c.Push(kind, message)
}

// Push adds a notification and returns it.
func (c *Center) Push(kind Kind, message string) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := Notification{
		ID:        c.nextID(),
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl[kind]),
	}
	c.items = append(c.items, n)
	return n
}

// Active drops expired notifications and returns the rest, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	live := c.items[:0]
	for _, n := range c.items {
		if now.Before(n.ExpiresAt) {
			live = append(live, n)
		}
	}
	c.items = live

	out := make([]Notification, len(live))
	copy(out, live)
	return out
}

// Dismiss removes a notification before it expires.
// Returns false if no live notification has that id.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}
