// Package store holds the in-memory, ordered provider list.
//
// The Store is the single source of truth while the program runs. It is
// mutated only through Add, Update, Remove and ReplaceAll, and every one of
// them, including no-op updates and removals, does two things afterwards:
//
//  1. Writes the full resulting list through the Persister.
//  2. Calls every subscriber with an Event describing the mutation.
//
// # Ordering
//
// Insertion order is display order. Update replaces in place and never
// moves a record. Remove closes the gap without reordering the rest.
//
// # Ownership
//
// A Store has one writer. It does no locking of its own; callers that share
// it across goroutines (the HTTP presenter) serialize access themselves.
package store
