// Package store provides SQLite-backed durable storage for execdir aliases.
//
// The store is a single table mapping alias names to filesystem paths.
// A name maps to at most one path; writing an existing name replaces it.
//
// # Handle Lifecycle
//
// Every operation runs inside exactly one transaction owned by a Handle:
//
//	h, err := store.Open(ctx, dir, store.ReadWrite)
//	...
//	defer h.Close() // commits
//
// Handles are never shared across operations. Aliases wraps each call in
// its own Open → operate → Close cycle.
//
// # Database Configuration
//
//   - WAL mode: readers see a consistent snapshot while a writer runs
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - Read-write transactions begin IMMEDIATE, so writers serialize at BEGIN
//   - Read-only handles run with query_only=ON
//
// Alias names are normalized to Unicode NFC before they touch the table.
package store
