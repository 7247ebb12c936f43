// Package metric provides Prometheus metrics for SealSlot.
//
//   - prometheus.go: the metric registry, protocol event recording and the
//     /metrics handler
//   - collector.go: gauges read live from the client registry and the
//     record store at scrape time
//
// Metrics include request counts and latency per route, registrations,
// accepted and rejected writes, verification verdicts, rate-limit
// rejections, registered clients and history depth.
package metric
