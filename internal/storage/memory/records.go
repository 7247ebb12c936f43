package memory

import (
	"sync"
	"time"

	"github.com/yndnr/sealslot-go/internal/core/domain"
	"github.com/yndnr/sealslot-go/pkg/integrity"
)

// DefaultSeedPayload is the payload of the record a new store starts with.
const DefaultSeedPayload = "Hello World"

// RecordStore holds the current record and the history of records it
// replaced, oldest first.
//
// The seed record is not counted in history: after N accepted writes the
// history holds exactly N entries (fewer only when a limit is set). Until
// the first accepted write, Recover returns the seed stamped with the time
// the store was created.
type RecordStore struct {
	mu      sync.RWMutex
	current domain.Record
	seed    domain.HistoryEntry
	history []domain.HistoryEntry

	limit int
	now   func() time.Time
}

// RecordOption configures the RecordStore.
type RecordOption func(*RecordStore)

// WithSeedPayload sets the payload of the initial record.
func WithSeedPayload(payload string) RecordOption {
	return func(s *RecordStore) {
		s.current = domain.Record{Payload: payload}
	}
}

// WithHistoryLimit caps the number of history entries kept. Zero or a
// negative value means unbounded.
func WithHistoryLimit(n int) RecordOption {
	return func(s *RecordStore) {
		s.limit = n
	}
}

// WithClock sets the time source used to stamp history entries.
func WithClock(now func() time.Time) RecordOption {
	return func(s *RecordStore) {
		s.now = now
	}
}

// NewRecordStore creates a store holding the seed record with an empty
// checksum and tag.
func NewRecordStore(opts ...RecordOption) *RecordStore {
	s := &RecordStore{
		current: domain.Record{Payload: DefaultSeedPayload},
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}
	s.seed = domain.HistoryEntry{Record: s.current, CapturedAt: s.now()}

	return s
}

// Read returns the current record verbatim.
func (s *RecordStore) Read() domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Write verifies rec against secret and, if it passes, moves the current
// record into history and installs rec. It returns the history depth after
// the write. A rejected record leaves the store untouched.
func (s *RecordStore) Write(rec domain.Record, secret string) (int, error) {
	if !integrity.Verify(rec.Payload, rec.Checksum, rec.Tag, secret) {
		return 0, domain.ErrIntegrityFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, domain.HistoryEntry{
		Record:     s.current,
		CapturedAt: s.now(),
	})
	if s.limit > 0 && len(s.history) > s.limit {
		drop := len(s.history) - s.limit
		// Copy down so the dropped prefix does not pin the backing array.
		s.history = append(s.history[:0:0], s.history[drop:]...)
	}
	s.current = rec

	return len(s.history), nil
}

// Recover returns the most recently appended history entry, or the seed
// entry if no write has been accepted yet.
func (s *RecordStore) Recover() (domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) == 0 {
		return s.seed, nil
	}
	return s.history[len(s.history)-1], nil
}

// HistoryLen returns the number of history entries.
func (s *RecordStore) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.history)
}

// History returns a copy of the history, oldest first.
func (s *RecordStore) History() []domain.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}
