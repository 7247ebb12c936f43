package metric

import "github.com/prometheus/client_golang/prometheus"

// StateSource reports live sizes for scrape-time gauges.
type StateSource interface {
	Clients() int
	HistoryDepth() int
}

// StateCollector exports the number of registered clients and the history
// depth, read from src on every scrape.
type StateCollector struct {
	src     StateSource
	clients *prometheus.Desc
	depth   *prometheus.Desc
}

// NewStateCollector creates a collector reading from src.
func NewStateCollector(src StateSource) *StateCollector {
	return &StateCollector{
		src: src,
		clients: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "clients_registered"),
			"Registered client identities.",
			nil, nil,
		),
		depth: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "history_depth"),
			"Entries in the record history.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StateCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.clients
	ch <- c.depth
}

// Collect implements prometheus.Collector.
func (c *StateCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.clients, prometheus.GaugeValue, float64(c.src.Clients()))
	ch <- prometheus.MustNewConstMetric(c.depth, prometheus.GaugeValue, float64(c.src.HistoryDepth()))
}

// StateFunc adapts two functions to StateSource.
type StateFunc struct {
	ClientsFn      func() int
	HistoryDepthFn func() int
}

// Clients implements StateSource.
func (f StateFunc) Clients() int { return f.ClientsFn() }

// HistoryDepth implements StateSource.
func (f StateFunc) HistoryDepth() int { return f.HistoryDepthFn() }
