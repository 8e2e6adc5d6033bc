// Package kv provides a SQLite-backed durable key-value store.
//
// It plays the role a browser's local storage plays for a single-page app:
// a flat namespace of string keys mapping to text values, written whole on
// every save. Values are opaque to this package; callers own the encoding.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Pass ":memory:" to Open for a throwaway store (used by tests and the
// scenario harness).
package kv
