package service

import (
	"context"
	"time"

	"github.com/yndnr/sealslot-go/internal/core/domain"
	"github.com/yndnr/sealslot-go/pkg/integrity"
)

// RecordRepository defines the storage interface for the versioned record.
type RecordRepository interface {
	// Read returns the current record.
	Read() domain.Record

	// Write verifies rec against secret and installs it, returning the
	// history depth. It returns domain.ErrIntegrityFailed on mismatch.
	Write(rec domain.Record, secret string) (int, error)

	// Recover returns the newest history entry, or the seed before any
	// accepted write. It returns domain.ErrHistoryEmpty if it has neither.
	Recover() (domain.HistoryEntry, error)

	// HistoryLen returns the number of history entries.
	HistoryLen() int
}

// Recorder receives protocol events for metrics. All methods must be safe
// for concurrent use.
type Recorder interface {
	ClientRegistered(total int)
	WriteAttempted(accepted bool, historyDepth int)
	Verified(op string, valid bool)
}

// Verification operation labels passed to Recorder.Verified.
const (
	OpRead    = "read"
	OpRecover = "recover"
)

type nopRecorder struct{}

func (nopRecorder) ClientRegistered(int)     {}
func (nopRecorder) WriteAttempted(bool, int) {}
func (nopRecorder) Verified(string, bool)    {}

// RecordView is a record as presented to one client, with the verification
// verdict computed against that client's secret.
type RecordView struct {
	Payload    string
	Checksum   string
	Tag        string
	Verified   bool
	CapturedAt time.Time // zero except for recovered records
}

// WriteResult is returned by an accepted write.
type WriteResult struct {
	HistoryDepth int
}

// ProtocolService implements the session protocol on top of the client
// registry and the record store.
//
// Each operation authenticates first: an unknown token never reaches the
// store. A verification mismatch on read or recover is reported in the
// view, not as an error.
type ProtocolService struct {
	registry *RegistryService
	records  RecordRepository
	recorder Recorder
}

// NewProtocolService creates a new ProtocolService. recorder may be nil.
func NewProtocolService(registry *RegistryService, records RecordRepository, recorder Recorder) *ProtocolService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &ProtocolService{
		registry: registry,
		records:  records,
		recorder: recorder,
	}
}

// Registry returns the client registry backing the protocol.
func (p *ProtocolService) Registry() *RegistryService {
	return p.registry
}

// HistoryDepth returns the number of recoverable history entries.
func (p *ProtocolService) HistoryDepth() int {
	return p.records.HistoryLen()
}

// HandleRegister registers a new client.
func (p *ProtocolService) HandleRegister(ctx context.Context) (domain.ClientIdentity, error) {
	id, err := p.registry.Register(ctx)
	if err != nil {
		return domain.ClientIdentity{}, err
	}
	p.recorder.ClientRegistered(p.registry.Count())
	return id, nil
}

// HandleRead authenticates tok and returns the current record.
func (p *ProtocolService) HandleRead(ctx context.Context, tok string) (RecordView, error) {
	id, err := p.registry.Authenticate(ctx, tok)
	if err != nil {
		return RecordView{}, err
	}
	return p.ReadAs(ctx, id), nil
}

// HandleWrite authenticates tok and submits rec.
func (p *ProtocolService) HandleWrite(ctx context.Context, tok string, rec domain.Record) (WriteResult, error) {
	id, err := p.registry.Authenticate(ctx, tok)
	if err != nil {
		return WriteResult{}, err
	}
	return p.WriteAs(ctx, id, rec)
}

// HandleRecover authenticates tok and returns the newest history entry,
// which is the seed until the first accepted write.
func (p *ProtocolService) HandleRecover(ctx context.Context, tok string) (RecordView, error) {
	id, err := p.registry.Authenticate(ctx, tok)
	if err != nil {
		return RecordView{}, err
	}
	return p.RecoverAs(ctx, id)
}

// ReadAs returns the current record verified against id's secret.
func (p *ProtocolService) ReadAs(_ context.Context, id domain.ClientIdentity) RecordView {
	rec := p.records.Read()
	view := p.view(rec, id.Secret)
	p.recorder.Verified(OpRead, view.Verified)
	return view
}

// WriteAs submits rec on behalf of id.
func (p *ProtocolService) WriteAs(_ context.Context, id domain.ClientIdentity, rec domain.Record) (WriteResult, error) {
	depth, err := p.records.Write(rec, id.Secret)
	if err != nil {
		p.recorder.WriteAttempted(false, p.records.HistoryLen())
		return WriteResult{}, err
	}
	p.recorder.WriteAttempted(true, depth)
	return WriteResult{HistoryDepth: depth}, nil
}

// RecoverAs returns the newest history entry verified against id's secret.
func (p *ProtocolService) RecoverAs(_ context.Context, id domain.ClientIdentity) (RecordView, error) {
	entry, err := p.records.Recover()
	if err != nil {
		return RecordView{}, err
	}

	view := p.view(entry.Record, id.Secret)
	view.CapturedAt = entry.CapturedAt
	p.recorder.Verified(OpRecover, view.Verified)
	return view, nil
}

func (p *ProtocolService) view(rec domain.Record, secret string) RecordView {
	return RecordView{
		Payload:  rec.Payload,
		Checksum: rec.Checksum,
		Tag:      rec.Tag,
		Verified: integrity.Verify(rec.Payload, rec.Checksum, rec.Tag, secret),
	}
}
