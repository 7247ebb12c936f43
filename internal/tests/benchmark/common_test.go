package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/yndnr/sealslot-go/internal/core/domain"
	"github.com/yndnr/sealslot-go/internal/core/service"
	"github.com/yndnr/sealslot-go/internal/storage/memory"
	"github.com/yndnr/sealslot-go/pkg/integrity"
)

// PayloadSizes defines the payload sizes in bytes for benchmarking.
var PayloadSizes = []int{64, 1024, 16 * 1024, 256 * 1024}

// ClientCounts defines registry sizes for benchmarking.
var ClientCounts = []int{1000, 10000, 100000}

func payloadOf(size int) string {
	return strings.Repeat("x", size)
}

// newProtocol builds a protocol over fresh memory stores.
func newProtocol(historyLimit int) *service.ProtocolService {
	registry := service.NewRegistryService(memory.NewClientStore())
	records := memory.NewRecordStore(memory.WithHistoryLimit(historyLimit))
	return service.NewProtocolService(registry, records, nil)
}

// registerClients registers count clients and returns their identities.
func registerClients(b *testing.B, p *service.ProtocolService, count int) []domain.ClientIdentity {
	b.Helper()
	ctx := context.Background()
	ids := make([]domain.ClientIdentity, count)
	for i := range ids {
		id, err := p.HandleRegister(ctx)
		if err != nil {
			b.Fatalf("HandleRegister failed: %v", err)
		}
		ids[i] = id
	}
	return ids
}

// sealedRecord seals payload for id.
func sealedRecord(id domain.ClientIdentity, payload string) domain.Record {
	s := integrity.Seal(payload, id.Secret)
	return domain.Record{Payload: s.Payload, Checksum: s.Checksum, Tag: s.Tag}
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithPayloadSizes runs a benchmark function with various payload sizes.
func runWithPayloadSizes(b *testing.B, benchFn func(b *testing.B, size int)) {
	for _, size := range PayloadSizes {
		b.Run(fmt.Sprintf("payload_%d", size), func(b *testing.B) {
			b.SetBytes(int64(size))
			benchFn(b, size)
		})
	}
}
