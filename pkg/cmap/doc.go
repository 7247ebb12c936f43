// Package cmap provides a concurrent map for SealSlot.
//
// Keys are spread over a fixed number of shards, each guarded by its own
// RWMutex, so lookups for unrelated keys never wait on each other:
//
//   - Sharding: power-of-two shard count, seeded maphash distribution
//   - Fine-grained Locking: per-shard RWMutex
//   - Atomic inserts: SetIfAbsent / GetOrSet for check-then-act callers
//   - Pruning: predicate-based deletion for idle entries
//
// Usage:
//
//	m := cmap.New[string, domain.ClientIdentity]()
//	if !m.SetIfAbsent(id.Token, id) {
//		// collision, pick another key
//	}
//	val, ok := m.Get(id.Token)
package cmap
