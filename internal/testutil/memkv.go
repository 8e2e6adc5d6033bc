package testutil

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory stand-in for the durable key-value store.
//
// GetErr and PutErr, when set, are returned by every Get or Put call so tests
// can exercise degraded storage. Puts counts successful writes.
type MemoryKV struct {
	mu     sync.Mutex
	data   map[string]string
	GetErr error
	PutErr error
	Puts   int
}

// NewMemoryKV creates an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the value under key and whether it was present.
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Put stores value under key.
func (m *MemoryKV) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.data[key] = value
	m.Puts++
	return nil
}

// Set seeds a raw value, bypassing PutErr and the write counter.
func (m *MemoryKV) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Raw returns the raw value under key.
func (m *MemoryKV) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}
