package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/providers/internal/provider"
)

// ErrDuplicateID is returned by Add when the record's id is already present.
var ErrDuplicateID = errors.New("duplicate provider id")

// ErrMissingID is returned by Add when the record has no id assigned.
var ErrMissingID = errors.New("provider id not assigned")

// Persister receives the full list after every mutation.
type Persister interface {
	Save(ctx context.Context, records []provider.Record)
}

// Op identifies the kind of mutation in an Event.
type Op string

const (
	OpAdd     Op = "add"
	OpUpdate  Op = "update"
	OpRemove  Op = "remove"
	OpReplace Op = "replace"
)

// Event describes one completed mutation.
type Event struct {
	Op Op
	// ID is the affected record; zero for OpReplace.
	ID int64
	// Changed is false when Update or Remove found no matching record.
	Changed bool
	// Records is a snapshot of the list after the mutation.
	Records []provider.Record
}

// Store is the ordered provider collection.
type Store struct {
	records     []provider.Record
	persister   Persister
	subscribers map[int]func(Event)
	nextSub     int
}

// New creates an empty store. A nil persister disables persistence.
func New(persister Persister) *Store {
	return &Store{
		records:     []provider.Record{},
		persister:   persister,
		subscribers: make(map[int]func(Event)),
	}
}

// Subscribe registers fn to be called after every mutation, in
// registration order. The returned function unregisters it.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() { delete(s.subscribers, id) }
}

// Add appends r to the end of the list. r must carry an assigned id that is
// not already present; otherwise nothing changes and nothing is persisted.
func (s *Store) Add(ctx context.Context, r provider.Record) error {
	if !r.HasID() {
		return ErrMissingID
	}
	if s.index(r.ID) >= 0 {
		return fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
	}

	s.records = append(s.records, r)
	s.commit(ctx, Event{Op: OpAdd, ID: r.ID, Changed: true})
	return nil
}

// Update replaces the record whose id equals r.ID, keeping its position.
// Returns false, and leaves the list as it was, when no record matches.
func (s *Store) Update(ctx context.Context, r provider.Record) bool {
	i := s.index(r.ID)
	if i >= 0 {
		s.records[i] = r
	}
	s.commit(ctx, Event{Op: OpUpdate, ID: r.ID, Changed: i >= 0})
	return i >= 0
}

// Remove deletes the record with the given id.
// Returns false when no record matches; removing twice is harmless.
func (s *Store) Remove(ctx context.Context, id int64) bool {
	i := s.index(id)
	if i >= 0 {
		next := make([]provider.Record, 0, len(s.records)-1)
		next = append(next, s.records[:i]...)
		next = append(next, s.records[i+1:]...)
		s.records = next
	}
	s.commit(ctx, Event{Op: OpRemove, ID: id, Changed: i >= 0})
	return i >= 0
}

// ReplaceAll swaps in records wholesale. Used to seed the store on load.
func (s *Store) ReplaceAll(ctx context.Context, records []provider.Record) {
	next := make([]provider.Record, len(records))
	copy(next, records)
	s.records = next
	s.commit(ctx, Event{Op: OpReplace, Changed: true})
}

// Snapshot returns a copy of the list in display order. Never nil.
func (s *Store) Snapshot() []provider.Record {
	out := make([]provider.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id int64) (provider.Record, bool) {
	i := s.index(id)
	if i < 0 {
		return provider.Record{}, false
	}
	return s.records[i], true
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) index(id int64) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// commit persists the current list and fans the event out to subscribers.
func (s *Store) commit(ctx context.Context, ev Event) {
	if s.persister != nil {
		s.persister.Save(ctx, s.Snapshot())
	}
	for id := 0; id < s.nextSub; id++ {
		fn, ok := s.subscribers[id]
		if !ok {
			continue
		}
		ev.Records = s.Snapshot()
		fn(ev)
	}
}
