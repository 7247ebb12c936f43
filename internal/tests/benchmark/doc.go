// Package benchmark provides performance benchmarks for SealSlot.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Payload sizes and registry sizes are swept with sub-benchmarks:
//
//	go test -bench=BenchmarkProtocol -benchmem -benchtime=5s ./internal/tests/benchmark/...
//
// Compare results:
//
//	benchstat old.txt new.txt
package benchmark
