package benchmark

import (
	"testing"

	"github.com/yndnr/sealslot-go/pkg/integrity"
	"github.com/yndnr/sealslot-go/pkg/token"
)

// BenchmarkSecretGenerate benchmarks client secret generation.
func BenchmarkSecretGenerate(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := token.GenerateSecret(); err != nil {
			b.Fatalf("GenerateSecret failed: %v", err)
		}
	}
}

// BenchmarkSeal benchmarks checksum plus tag computation.
func BenchmarkSeal(b *testing.B) {
	secret, _ := token.GenerateSecret()

	runWithPayloadSizes(b, func(b *testing.B, size int) {
		payload := payloadOf(size)
		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			integrity.Seal(payload, secret)
		}
	})
}

// BenchmarkVerify benchmarks tag verification.
func BenchmarkVerify(b *testing.B) {
	secret, _ := token.GenerateSecret()

	runWithPayloadSizes(b, func(b *testing.B, size int) {
		s := integrity.Seal(payloadOf(size), secret)
		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			if !integrity.Verify(s.Payload, s.Checksum, s.Tag, secret) {
				b.Fatal("Verify failed")
			}
		}
	})
}
