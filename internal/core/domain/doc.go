// Package domain defines the core domain models for SealSlot.
//
// Domain models are plain values without IO dependencies or framework
// coupling. This package contains:
//
//   - ClientIdentity: a registered client's token and HMAC secret
//   - Record: the sealed payload held in the single slot
//   - HistoryEntry: a previously accepted record with its capture time
//   - Errors: domain error definitions and codes
package domain
