package metric

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Snapshot describes the configuration most recently loaded.
type Snapshot struct {
	File        string
	Fingerprint uint64
	ExecuteMode string
	Keys        int
	Warnings    int
}

// Collector exports the current Snapshot. It reports nothing until the
// first Update.
type Collector struct {
	mu       sync.RWMutex
	snapshot *Snapshot

	info     *prometheus.Desc
	keys     *prometheus.Desc
	warnings *prometheus.Desc
}

// NewCollector creates a new configuration collector.
func NewCollector() *Collector {
	return &Collector{
		info: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "config", "info"),
			"Loaded configuration, always 1.",
			[]string{"file", "fingerprint", "execute_mode"}, nil,
		),
		keys: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "config", "keys"),
			"Number of leaf keys in the loaded document.",
			[]string{"file"}, nil,
		),
		warnings: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "config", "warnings"),
			"Schema warnings in the loaded document.",
			[]string{"file"}, nil,
		),
	}
}

// Update replaces the current snapshot.
func (c *Collector) Update(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = &s
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.info
	ch <- c.keys
	ch <- c.warnings
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	s := c.snapshot
	c.mu.RUnlock()
	if s == nil {
		return
	}

	fp := strconv.FormatUint(s.Fingerprint, 16)
	ch <- prometheus.MustNewConstMetric(c.info, prometheus.GaugeValue, 1, s.File, fp, s.ExecuteMode)
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(s.Keys), s.File)
	ch <- prometheus.MustNewConstMetric(c.warnings, prometheus.GaugeValue, float64(s.Warnings), s.File)
}
