// Package memory provides in-memory storage for SealSlot.
//
// Two stores live here:
//
//   - ClientStore: registered client identities keyed by token, on a
//     sharded map so concurrent lookups do not contend on one lock.
//   - RecordStore: the single current record and its history of
//     superseded versions, guarded by one RWMutex.
//
// Nothing is persisted; state lives for the process lifetime.
package memory
