package domain

import "time"

// Record is the sealed payload held in the single slot.
//
// Checksum is the SHA-512 hex digest of Payload. Tag is the HMAC-SHA-512
// hex digest of Payload+"-"+Checksum under the writer's secret. The seed
// record carries empty Checksum and Tag and is never a valid record for
// any client.
type Record struct {
	Payload  string `json:"data"`
	Checksum string `json:"checksum"`
	Tag      string `json:"hmac"`
}

// IsZero reports whether r is the zero Record.
func (r Record) IsZero() bool {
	return r == Record{}
}

// HistoryEntry is a record that was accepted by a write, kept for recovery.
type HistoryEntry struct {
	Record     Record    `json:"record"`
	CapturedAt time.Time `json:"captured_at"`
}
