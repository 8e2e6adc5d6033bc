// Package mirror keeps the durable copy of the provider list.
//
// The whole list lives under one key as a JSON array. Load never fails: an
// absent key yields an empty list, and an unreadable or malformed value is
// logged and also treated as empty. Save always writes the full list.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/providers/internal/provider"
)

// DefaultKey is the storage key the provider list is kept under.
const DefaultKey = "proveedores"

// Backend is the durable key-value store the mirror writes to.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Mirror reads and writes the provider list under a fixed key.
type Mirror struct {
	backend Backend
	key     string
	logger  *slog.Logger
}

// New creates a mirror over backend. An empty key selects DefaultKey and a
// nil logger selects slog.Default().
func New(backend Backend, key string, logger *slog.Logger) *Mirror {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{backend: backend, key: key, logger: logger}
}

// Key returns the storage key.
func (m *Mirror) Key() string {
	return m.key
}

// Load returns the stored provider list, or an empty list when nothing
// usable is stored. The result is never nil.
func (m *Mirror) Load(ctx context.Context) []provider.Record {
	raw, ok, err := m.backend.Get(ctx, m.key)
	if err != nil {
		m.logger.Warn("provider list unreadable, starting empty", "key", m.key, "error", err)
		return []provider.Record{}
	}
	if !ok {
		m.logger.Debug("no stored provider list", "key", m.key)
		return []provider.Record{}
	}

	records, err := Decode(raw)
	if err != nil {
		m.logger.Warn("stored provider list malformed, starting empty", "key", m.key, "error", err)
		return []provider.Record{}
	}

	m.logger.Debug("provider list loaded", "key", m.key, "count", len(records))
	return records
}

// Save overwrites the stored list with records. Failures are logged and
// otherwise ignored: the in-memory list stays authoritative.
func (m *Mirror) Save(ctx context.Context, records []provider.Record) {
	data, err := Encode(records)
	if err != nil {
		m.logger.Error("encode provider list", "key", m.key, "error", err)
		return
	}
	if err := m.backend.Put(ctx, m.key, data); err != nil {
		m.logger.Error("write provider list", "key", m.key, "error", err)
		return
	}
	m.logger.Debug("provider list saved", "key", m.key, "count", len(records))
}

// Encode serializes records as a JSON array, field values unchanged.
// An empty or nil list encodes as "[]".
func Encode(records []provider.Record) (string, error) {
	out := records
	if out == nil {
		out = []provider.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return "", fmt.Errorf("marshal records: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// Decode parses a stored value. Anything other than a JSON array of
// provider objects with non-zero, distinct ids is an error; unknown fields
// (e.g. an older shape of the record) are rejected rather than migrated.
// A JSON null decodes as an empty list.
func Decode(raw string) ([]provider.Record, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()

	var records []provider.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unmarshal records: trailing data after array")
	}

	seen := make(map[int64]bool, len(records))
	for i, r := range records {
		if !r.HasID() {
			return nil, fmt.Errorf("record %d: missing id", i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("record %d: duplicate id %d", i, r.ID)
		}
		seen[r.ID] = true
	}

	if records == nil {
		records = []provider.Record{}
	}
	return records, nil
}
